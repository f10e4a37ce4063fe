package store

import (
	"encoding/json"
	"strings"
	"time"
)

// Specialist is a roster entry managed by clinic staff. Coordinates are
// validated at the CRUD boundary; the matcher assumes they are in range.
type Specialist struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:128;index"`
	Role      string  `gorm:"size:128"`
	City      string  `gorm:"size:128;index"`
	Lat       float64 `gorm:"column:lat"`
	Lng       float64 `gorm:"column:lng"`
	Phone     string  `gorm:"size:32"`
	Email     string  `gorm:"size:128"`
	Bio       string  `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Evaluation is a persisted screening outcome shown on the staff dashboard.
type Evaluation struct {
	ID                      string `gorm:"primaryKey;size:64"`
	Score                   int    `gorm:"index"`
	Confidence              string `gorm:"size:16;index"`
	TreatmentRecommendation string `gorm:"type:text"`
	Reasoning               string `gorm:"type:text"`
	RecommendedSpecialistID *uint  `gorm:"index"`
	City                    string `gorm:"size:128"`
	AnswersJSON             string `gorm:"type:text"`
	ProcessingTimeMs        int64
	CreatedAt               time.Time `gorm:"autoCreateTime"`
}

// BlogPost is an article managed through the content CRUD.
type BlogPost struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:256"`
	Slug      string `gorm:"size:256;uniqueIndex"`
	Excerpt   string `gorm:"size:512"`
	Content   string `gorm:"type:text"`
	Published bool   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Testimonial is a parent testimonial managed through the content CRUD.
type Testimonial struct {
	ID        uint   `gorm:"primaryKey"`
	Author    string `gorm:"size:128"`
	Quote     string `gorm:"type:text"`
	Rating    int
	Approved  bool `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SetAnswers stores the raw quiz payload as JSON alongside the evaluation.
func (e *Evaluation) SetAnswers(answers any) {
	payload, err := json.Marshal(answers)
	if err != nil {
		e.AnswersJSON = ""
		return
	}
	e.AnswersJSON = string(payload)
}

// Answers decodes the stored quiz payload into the provided destination.
func (e *Evaluation) Answers(dest any) bool {
	if strings.TrimSpace(e.AnswersJSON) == "" {
		return false
	}
	return json.Unmarshal([]byte(e.AnswersJSON), dest) == nil
}
