package matcher

import (
	"math"
	"strings"

	"respira-screen/backend/internal/geo"
	"respira-screen/backend/internal/screening"
	"respira-screen/backend/internal/store"
)

// qualifiedScoreGate is the screening score at or above which only
// functional-orthopedics-qualified specialists are considered.
const qualifiedScoreGate = 50

var qualifiedKeywords = []string{
	"ortodont",
	"ortopedia",
	"funcional",
	"alinhador",
	"invisalign",
	"odontopediatra",
}

// IsQualified reports whether the role text marks a specialist as
// functional-orthopedics-qualified.
func IsQualified(role string) bool {
	lower := strings.ToLower(role)
	for _, keyword := range qualifiedKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// Match selects the single best specialist for the respondent, or nil when
// the roster is empty. Specialization is a hard gate relaxed only when no
// qualified specialist exists or the screening score is below the gate;
// geography breaks ties within the selected pool. Selection is deterministic:
// roster order decides every fallback and distance tie.
func Match(answers screening.Answers, score int, roster []store.Specialist) *store.Specialist {
	if len(roster) == 0 {
		return nil
	}

	qualified := filterQualified(roster)

	loc := answers.Location
	if loc == nil || (loc.Coords == nil && strings.TrimSpace(loc.City) == "") {
		if len(qualified) > 0 {
			return &qualified[0]
		}
		return &roster[0]
	}

	var pool []store.Specialist
	switch {
	case len(qualified) == 0:
		pool = roster
	case score >= qualifiedScoreGate:
		pool = qualified
	default:
		pool = roster
	}
	if len(pool) == 0 {
		return nil
	}

	if loc.Coords == nil {
		for i := range pool {
			if strings.EqualFold(strings.TrimSpace(pool[i].City), strings.TrimSpace(loc.City)) {
				return &pool[i]
			}
		}
		return &pool[0]
	}

	best := 0
	bestDist := math.MaxFloat64
	for i := range pool {
		d := geo.DistanceKm(loc.Coords.Lat, loc.Coords.Lng, pool[i].Lat, pool[i].Lng)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return &pool[best]
}

func filterQualified(roster []store.Specialist) []store.Specialist {
	var qualified []store.Specialist
	for _, specialist := range roster {
		if IsQualified(specialist.Role) {
			qualified = append(qualified, specialist)
		}
	}
	return qualified
}
