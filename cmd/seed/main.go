package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"respira-screen/backend/internal/matcher"
	"respira-screen/backend/internal/store"
)

// rosterEntry mirrors the exported roster format used by the clinic admin.
type rosterEntry struct {
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Phone string  `json:"phone"`
	Email string  `json:"email"`
	Bio   string  `json:"bio"`
}

func main() {
	var (
		dbPath     = flag.String("db", filepath.FromSlash("data/respira-screen.db"), "Path to SQLite database")
		rosterPath = flag.String("roster", "", "Path to specialist roster JSON file")
		replace    = flag.Bool("replace", false, "Replace the existing roster instead of appending")
	)
	flag.Parse()

	if strings.TrimSpace(*rosterPath) == "" {
		logrus.Fatal("roster file required (-roster)")
	}

	entries, err := loadRoster(*rosterPath)
	if err != nil {
		logrus.Fatalf("load roster: %v", err)
	}
	if len(entries) == 0 {
		logrus.Fatal("roster file contains no specialists")
	}

	db, err := store.Open(*dbPath, true)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("close database")
		}
	}()

	roster := make([]store.Specialist, 0, len(entries))
	qualified := 0
	for _, entry := range entries {
		if strings.TrimSpace(entry.Name) == "" {
			logrus.WithField("entry", entry).Warn("skipping roster entry without name")
			continue
		}
		if entry.Lat < -90 || entry.Lat > 90 || entry.Lng < -180 || entry.Lng > 180 {
			logrus.WithFields(logrus.Fields{
				"name": entry.Name,
				"lat":  entry.Lat,
				"lng":  entry.Lng,
			}).Warn("skipping roster entry with out-of-range coordinates")
			continue
		}
		if matcher.IsQualified(entry.Role) {
			qualified++
		}
		roster = append(roster, store.Specialist{
			Name:  entry.Name,
			Role:  entry.Role,
			City:  entry.City,
			Lat:   entry.Lat,
			Lng:   entry.Lng,
			Phone: entry.Phone,
			Email: entry.Email,
			Bio:   entry.Bio,
		})
	}

	if *replace {
		if err := db.ReplaceSpecialists(roster); err != nil {
			logrus.Fatalf("replace roster: %v", err)
		}
	} else {
		for i := range roster {
			if err := db.SaveSpecialist(&roster[i]); err != nil {
				logrus.Fatalf("save specialist %q: %v", roster[i].Name, err)
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"specialists": len(roster),
		"qualified":   qualified,
		"replaced":    *replace,
	}).Info("specialist roster seeded")
}

func loadRoster(path string) ([]rosterEntry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var entries []rosterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
