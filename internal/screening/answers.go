package screening

import "strings"

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Location describes the respondent's approximate location, sourced from
// browser geolocation plus reverse-geocoding or manual address entry.
type Location struct {
	City   string       `json:"city"`
	Coords *Coordinates `json:"coords,omitempty"`
}

// Answers carries the raw quiz responses for one respondent session.
// Every field is optional; absent fields contribute nothing to the score.
type Answers struct {
	AgeBracket        string    `json:"age_bracket"`
	BreathingSigns    []string  `json:"breathing_signs"`
	DentalIssues      []string  `json:"dental_issues"`
	OralHabits        []string  `json:"oral_habits"`
	Posture           string    `json:"posture"`
	SpeechIssues      string    `json:"speech_issues"`
	SleepQuality      string    `json:"sleep_quality"`
	PreviousTreatment string    `json:"previous_treatment"`
	Location          *Location `json:"location,omitempty"`
}

// PostureAnswer classifies the postural observation option.
type PostureAnswer string

const (
	PostureFrequent   PostureAnswer = "frequent"
	PostureOccasional PostureAnswer = "occasional"
	PostureNone       PostureAnswer = "none"
)

// SpeechAnswer classifies the speech observation option.
type SpeechAnswer string

const (
	SpeechImpaired SpeechAnswer = "impaired"
	SpeechNone     SpeechAnswer = "none"
)

// SleepAnswer classifies the reported sleep quality.
type SleepAnswer string

const (
	SleepPoor SleepAnswer = "poor"
	SleepFair SleepAnswer = "fair"
	SleepGood SleepAnswer = "good"
)

// PriorCareAnswer classifies whether the child was evaluated before.
type PriorCareAnswer string

const (
	PriorCareNone    PriorCareAnswer = "none"
	PriorCareUnsure  PriorCareAnswer = "unsure"
	PriorCareTreated PriorCareAnswer = "treated"
)

// ParsePosture maps the raw quiz option onto a posture answer. Any value
// containing "sim" takes the frequent tier; only the exact occasional
// option maps to the lower tier.
func ParsePosture(raw string) PostureAnswer {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PostureNone
	}
	if strings.Contains(strings.ToLower(trimmed), "sim") {
		return PostureFrequent
	}
	if strings.EqualFold(trimmed, "Às vezes") {
		return PostureOccasional
	}
	return PostureNone
}

var impairedSpeechOptions = []string{
	"Sim, troca alguns sons",
	"Sim, fala com a boca aberta",
	"Dificuldade de pronúncia",
}

// ParseSpeech maps the raw quiz option onto a speech answer.
func ParseSpeech(raw string) SpeechAnswer {
	trimmed := strings.TrimSpace(raw)
	for _, option := range impairedSpeechOptions {
		if strings.EqualFold(trimmed, option) {
			return SpeechImpaired
		}
	}
	return SpeechNone
}

// ParseSleep maps the raw quiz option onto a sleep answer. Option strings
// match by prefix so wording after the first clause can evolve freely.
func ParseSleep(raw string) SleepAnswer {
	trimmed := strings.TrimSpace(raw)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "muito ruim"), strings.HasPrefix(lower, "ruim"):
		return SleepPoor
	case strings.HasPrefix(lower, "regular"):
		return SleepFair
	default:
		return SleepGood
	}
}

// ParsePriorCare maps the raw quiz option onto a prior-care answer.
func ParsePriorCare(raw string) PriorCareAnswer {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(trimmed, "Não, nunca"):
		return PriorCareNone
	case strings.EqualFold(trimmed, "Não sei"):
		return PriorCareUnsure
	default:
		return PriorCareTreated
	}
}

// AgeYears extracts the lower bound of the age bracket ("3-5 anos" -> 3).
// The second return reports whether a leading integer could be parsed.
func AgeYears(bracket string) (int, bool) {
	trimmed := strings.TrimSpace(bracket)
	if trimmed == "" {
		return 0, false
	}
	if idx := strings.Index(trimmed, "-"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimSpace(trimmed)
	years := 0
	digits := 0
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			break
		}
		years = years*10 + int(r-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	return years, true
}
