package recommend

import (
	"respira-screen/backend/internal/matcher"
	"respira-screen/backend/internal/screening"
	"respira-screen/backend/internal/store"
)

// Evaluation combines the scoring assessment with the matched specialist.
// RecommendedSpecialist is nil when the roster is empty or no candidate
// could be determined; the assessment fields are always populated.
type Evaluation struct {
	screening.Assessment
	RecommendedSpecialist *store.Specialist `json:"recommended_specialist,omitempty"`
}

// Evaluate scores the answers once and threads the resulting score into the
// specialist matcher. Scoring and matching are independent failure domains:
// an empty roster degrades only the specialist field.
func Evaluate(answers screening.Answers, roster []store.Specialist) Evaluation {
	assessment := screening.Score(answers)
	specialist := matcher.Match(answers, assessment.Score, roster)
	return Evaluation{
		Assessment:            assessment,
		RecommendedSpecialist: specialist,
	}
}
