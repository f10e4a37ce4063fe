package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"respira-screen/backend/internal/recommend"
	"respira-screen/backend/internal/screening"
	"respira-screen/backend/internal/store"
)

// handleScore runs the scoring engine without matching or persistence.
func (s *Server) handleScore(c *gin.Context) {
	var answers screening.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screening payload"})
		return
	}
	c.JSON(http.StatusOK, AssessmentFromResult(screening.Score(answers)))
}

// handleRecommend runs the full evaluation, persists it and broadcasts the
// result to dashboard stream subscribers.
func (s *Server) handleRecommend(c *gin.Context) {
	var answers screening.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid screening payload"})
		return
	}

	start := time.Now()

	roster, err := s.db.ListSpecialists()
	if err != nil {
		// Scoring still proceeds; only the specialist match degrades.
		logrus.WithError(err).Warn("load specialist roster")
		roster = nil
	}

	result := recommend.Evaluate(answers, roster)
	elapsedMs := time.Since(start).Milliseconds()

	evaluation := store.Evaluation{
		ID:                      uuid.NewString(),
		Score:                   result.Score,
		Confidence:              string(result.Confidence),
		TreatmentRecommendation: result.Treatment,
		Reasoning:               result.Reasoning,
		ProcessingTimeMs:        elapsedMs,
	}
	if answers.Location != nil {
		evaluation.City = answers.Location.City
	}
	if result.RecommendedSpecialist != nil {
		id := result.RecommendedSpecialist.ID
		evaluation.RecommendedSpecialistID = &id
	}
	evaluation.SetAnswers(answers)

	if err := s.db.SaveEvaluation(&evaluation); err != nil {
		logrus.WithError(err).Error("persist evaluation")
	}

	dto := EvaluationDTOFromResult(evaluation.ID, result, elapsedMs, time.Now().UTC())
	s.evalNotifier.Broadcast(EvaluationEvent{
		Type:       "evaluation",
		Evaluation: &dto,
	})

	logrus.WithFields(logrus.Fields{
		"evaluation": evaluation.ID,
		"score":      result.Score,
		"confidence": result.Confidence,
		"matched":    result.RecommendedSpecialist != nil,
	}).Info("screening evaluation completed")

	c.JSON(http.StatusOK, dto)
}

// handleListEvaluations returns a page of persisted evaluations.
func (s *Server) handleListEvaluations(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := s.db.ListEvaluations(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list evaluations"})
		return
	}

	dtos := make([]EvaluationDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, EvaluationFromModel(item, s.resolveSpecialist(item.RecommendedSpecialistID)))
	}
	c.JSON(http.StatusOK, EvaluationsResponse{Items: dtos, Total: total})
}

// handleGetEvaluation returns a single persisted evaluation.
func (s *Server) handleGetEvaluation(c *gin.Context) {
	evaluation, err := s.db.GetEvaluation(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "evaluation not found"})
		return
	}
	c.JSON(http.StatusOK, EvaluationFromModel(*evaluation, s.resolveSpecialist(evaluation.RecommendedSpecialistID)))
}

func (s *Server) resolveSpecialist(id *uint) *store.Specialist {
	if id == nil {
		return nil
	}
	specialist, err := s.db.GetSpecialist(*id)
	if err != nil {
		return nil
	}
	return specialist
}
