package screening

import (
	"fmt"
	"strings"
)

// Confidence is the coarse qualitative bucket derived from the score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "alta"
	ConfidenceMedium Confidence = "média"
	ConfidenceLow    Confidence = "baixa"
)

// Assessment is the scoring engine output for one set of answers.
type Assessment struct {
	Score      int        `json:"score"`
	Confidence Confidence `json:"confidence"`
	Treatment  string     `json:"treatment_recommendation"`
	Reasoning  string     `json:"reasoning"`
}

const (
	maxScore        = 100
	highThreshold   = 70
	mediumThreshold = 40

	breathingSignPoints = 12
	breathingSignCap    = 30
	dentalIssuePoints   = 10
	dentalIssueCap      = 25
	oralHabitPoints     = 15
)

const (
	treatmentHigh   = "Recomendação forte: avaliação com ortopedia funcional dos maxilares e tratamento com alinhadores."
	treatmentMedium = "Sugerimos uma avaliação com especialista; o tratamento pode trazer benefícios."
	treatmentLow    = "Acompanhamento periódico; intervenção pode não ser necessária neste momento."
)

// Score converts the raw screening answers into an assessment. The engine is
// pure and total: missing or unparsable fields contribute zero points and
// never produce an error.
func Score(answers Answers) Assessment {
	total := 0
	var notes []string

	if strings.TrimSpace(answers.AgeBracket) != "" {
		years, ok := AgeYears(answers.AgeBracket)
		switch {
		case ok && years >= 3 && years <= 10:
			total += 15
			notes = append(notes, "Idade na janela ideal para ortopedia funcional (3-10 anos)")
		case ok && years < 3:
			total += 10
			notes = append(notes, "Idade precoce, acompanhamento preventivo indicado")
		default:
			total += 5
			notes = append(notes, "Idade fora da janela principal, avaliação ainda recomendada")
		}
	}

	if n := len(answers.BreathingSigns); n > 0 {
		total += capPoints(n*breathingSignPoints, breathingSignCap)
		notes = append(notes, fmt.Sprintf("%d sinais de respiração oral identificados", n))
	}

	if n := len(answers.DentalIssues); n > 0 {
		total += capPoints(n*dentalIssuePoints, dentalIssueCap)
		notes = append(notes, "Problemas dentários/oclusais identificados")
	}

	if len(answers.OralHabits) > 0 {
		total += oralHabitPoints
		notes = append(notes, "Hábitos orais presentes, como chupeta ou sucção de dedo")
	}

	switch ParsePosture(answers.Posture) {
	case PostureFrequent:
		total += 10
		notes = append(notes, "Alterações posturais observadas")
	case PostureOccasional:
		total += 5
	}

	if ParseSpeech(answers.SpeechIssues) == SpeechImpaired {
		total += 8
		notes = append(notes, "Possíveis alterações de fala relacionadas")
	}

	switch ParseSleep(answers.SleepQuality) {
	case SleepPoor:
		total += 12
		notes = append(notes, "Sono comprometido, possível respiração oral noturna")
	case SleepFair:
		total += 6
	}

	if strings.TrimSpace(answers.PreviousTreatment) != "" {
		switch ParsePriorCare(answers.PreviousTreatment) {
		case PriorCareNone, PriorCareUnsure:
			total += 5
			notes = append(notes, "Primeira intervenção, sem avaliação anterior")
		}
	}

	if total > maxScore {
		total = maxScore
	}

	confidence := confidenceForScore(total)
	return Assessment{
		Score:      total,
		Confidence: confidence,
		Treatment:  treatmentForScore(total),
		Reasoning:  buildReasoning(notes, total, confidence),
	}
}

func capPoints(points, limit int) int {
	if points > limit {
		return limit
	}
	return points
}

func confidenceForScore(score int) Confidence {
	switch {
	case score >= highThreshold:
		return ConfidenceHigh
	case score >= mediumThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func treatmentForScore(score int) string {
	switch {
	case score >= highThreshold:
		return treatmentHigh
	case score >= mediumThreshold:
		return treatmentMedium
	default:
		return treatmentLow
	}
}

func buildReasoning(notes []string, score int, confidence Confidence) string {
	if len(notes) == 0 {
		return fmt.Sprintf("Nenhum fator de risco relevante identificado. Pontuação final: %d/100, indicando confiança %s.", score, confidence)
	}
	return fmt.Sprintf("Identificamos %d fatores relevantes: %s. Pontuação final: %d/100, indicando confiança %s.",
		len(notes), strings.Join(notes, "; "), score, confidence)
}
