package store

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Respiração bucal em crianças", "respiracao-bucal-em-criancas"},
		{"  Hábitos Orais  ", "habitos-orais"},
		{"já-com-hífen", "ja-com-hifen"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := slugify(tc.in); got != tc.expected {
			t.Fatalf("%q: expected %q got %q", tc.in, tc.expected, got)
		}
	}
}

func TestEvaluationAnswersRoundTrip(t *testing.T) {
	type payload struct {
		AgeBracket string   `json:"age_bracket"`
		Signs      []string `json:"breathing_signs"`
	}
	e := Evaluation{}
	e.SetAnswers(payload{AgeBracket: "3-5 anos", Signs: []string{"ronco"}})

	var decoded payload
	if !e.Answers(&decoded) {
		t.Fatal("expected stored answers to decode")
	}
	if decoded.AgeBracket != "3-5 anos" || len(decoded.Signs) != 1 {
		t.Fatalf("unexpected decode: %+v", decoded)
	}

	var empty Evaluation
	if empty.Answers(&decoded) {
		t.Fatal("empty answers must not decode")
	}
}
