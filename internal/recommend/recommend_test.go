package recommend

import (
	"testing"

	"respira-screen/backend/internal/screening"
	"respira-screen/backend/internal/store"
)

func TestEvaluateEmptyRoster(t *testing.T) {
	answers := screening.Answers{
		AgeBracket:     "3-5 anos",
		BreathingSigns: []string{"respira pela boca", "ronco"},
	}
	result := Evaluate(answers, nil)
	if result.RecommendedSpecialist != nil {
		t.Fatalf("expected nil specialist, got %+v", result.RecommendedSpecialist)
	}
	if result.Score != 39 {
		t.Fatalf("expected score 39 got %d", result.Score)
	}
	if result.Confidence != screening.ConfidenceLow {
		t.Fatalf("expected confidence baixa got %s", result.Confidence)
	}
	if result.Reasoning == "" || result.Treatment == "" {
		t.Fatal("assessment fields must be populated even without a roster")
	}
}

func TestEvaluateThreadsScoreIntoMatcher(t *testing.T) {
	roster := []store.Specialist{
		{ID: 1, Role: "Dentista do Sono", City: "Faro", Lat: 37.0194, Lng: -7.9304},
		{ID: 2, Role: "Ortodontista", City: "Lisboa", Lat: 38.7223, Lng: -9.1393},
	}
	// All factors triggered: score clamps to 100, which gates the pool to
	// qualified specialists only.
	answers := screening.Answers{
		AgeBracket:        "3-5 anos",
		BreathingSigns:    []string{"a", "b", "c"},
		DentalIssues:      []string{"a", "b", "c"},
		OralHabits:        []string{"chupeta"},
		Posture:           "Sim, frequentemente",
		SpeechIssues:      "Sim, fala com a boca aberta",
		SleepQuality:      "Ruim, dorme de boca aberta",
		PreviousTreatment: "Não sei",
		Location: &screening.Location{
			Coords: &screening.Coordinates{Lat: 37.0, Lng: -7.9},
		},
	}
	result := Evaluate(answers, roster)
	if result.Score != 100 {
		t.Fatalf("expected clamped score 100 got %d", result.Score)
	}
	if result.RecommendedSpecialist == nil || result.RecommendedSpecialist.ID != 2 {
		t.Fatalf("expected qualified specialist 2, got %+v", result.RecommendedSpecialist)
	}
}
