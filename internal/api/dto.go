package api

import (
	"time"

	"respira-screen/backend/internal/recommend"
	"respira-screen/backend/internal/screening"
	"respira-screen/backend/internal/store"
)

// AssessmentResponse is the payload for scoring-only requests.
type AssessmentResponse struct {
	Score                   int    `json:"score"`
	Confidence              string `json:"confidence"`
	TreatmentRecommendation string `json:"treatment_recommendation"`
	Reasoning               string `json:"reasoning"`
}

// SpecialistDTO is the API representation of a roster entry.
type SpecialistDTO struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Role  string  `json:"role"`
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Phone string  `json:"phone,omitempty"`
	Email string  `json:"email,omitempty"`
	Bio   string  `json:"bio,omitempty"`
}

// EvaluationDTO is the API representation of a full screening evaluation.
type EvaluationDTO struct {
	ID                      string         `json:"id"`
	Score                   int            `json:"score"`
	Confidence              string         `json:"confidence"`
	TreatmentRecommendation string         `json:"treatment_recommendation"`
	Reasoning               string         `json:"reasoning"`
	RecommendedSpecialist   *SpecialistDTO `json:"recommended_specialist,omitempty"`
	ProcessingTimeMs        int64          `json:"processing_time_ms"`
	CreatedAt               time.Time      `json:"created_at"`
}

// EvaluationsResponse is the paginated staff listing payload.
type EvaluationsResponse struct {
	Items []EvaluationDTO `json:"items"`
	Total int64           `json:"total"`
}

// SpecialistRequest is the CRUD payload for roster entries. Coordinate
// validation happens here, at the roster boundary, not in the matcher.
type SpecialistRequest struct {
	Name  string  `json:"name" binding:"required"`
	Role  string  `json:"role" binding:"required"`
	City  string  `json:"city"`
	Lat   float64 `json:"lat" binding:"gte=-90,lte=90"`
	Lng   float64 `json:"lng" binding:"gte=-180,lte=180"`
	Phone string  `json:"phone"`
	Email string  `json:"email"`
	Bio   string  `json:"bio"`
}

// PostRequest is the CRUD payload for blog posts.
type PostRequest struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

// TestimonialRequest is the CRUD payload for testimonials.
type TestimonialRequest struct {
	Author   string `json:"author" binding:"required"`
	Quote    string `json:"quote" binding:"required"`
	Rating   int    `json:"rating" binding:"gte=0,lte=5"`
	Approved bool   `json:"approved"`
}

// AssessmentFromResult converts the scoring engine output.
func AssessmentFromResult(a screening.Assessment) AssessmentResponse {
	return AssessmentResponse{
		Score:                   a.Score,
		Confidence:              string(a.Confidence),
		TreatmentRecommendation: a.Treatment,
		Reasoning:               a.Reasoning,
	}
}

// SpecialistFromModel converts a store.Specialist into the DTO representation.
func SpecialistFromModel(s store.Specialist) SpecialistDTO {
	return SpecialistDTO{
		ID:    s.ID,
		Name:  s.Name,
		Role:  s.Role,
		City:  s.City,
		Lat:   s.Lat,
		Lng:   s.Lng,
		Phone: s.Phone,
		Email: s.Email,
		Bio:   s.Bio,
	}
}

// EvaluationDTOFromResult builds the response for a freshly computed evaluation.
func EvaluationDTOFromResult(id string, result recommend.Evaluation, elapsedMs int64, createdAt time.Time) EvaluationDTO {
	dto := EvaluationDTO{
		ID:                      id,
		Score:                   result.Score,
		Confidence:              string(result.Confidence),
		TreatmentRecommendation: result.Treatment,
		Reasoning:               result.Reasoning,
		ProcessingTimeMs:        elapsedMs,
		CreatedAt:               createdAt,
	}
	if result.RecommendedSpecialist != nil {
		specialist := SpecialistFromModel(*result.RecommendedSpecialist)
		dto.RecommendedSpecialist = &specialist
	}
	return dto
}

// EvaluationFromModel converts a persisted evaluation, resolving the
// recommended specialist when it still exists in the roster.
func EvaluationFromModel(e store.Evaluation, specialist *store.Specialist) EvaluationDTO {
	dto := EvaluationDTO{
		ID:                      e.ID,
		Score:                   e.Score,
		Confidence:              e.Confidence,
		TreatmentRecommendation: e.TreatmentRecommendation,
		Reasoning:               e.Reasoning,
		ProcessingTimeMs:        e.ProcessingTimeMs,
		CreatedAt:               e.CreatedAt,
	}
	if specialist != nil {
		converted := SpecialistFromModel(*specialist)
		dto.RecommendedSpecialist = &converted
	}
	return dto
}

// PostDTO is the API representation of a blog post.
type PostDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TestimonialDTO is the API representation of a testimonial.
type TestimonialDTO struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

// PostFromModel converts a store.BlogPost into a DTO.
func PostFromModel(p store.BlogPost) PostDTO {
	return PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// TestimonialFromModel converts a store.Testimonial into a DTO.
func TestimonialFromModel(item store.Testimonial) TestimonialDTO {
	return TestimonialDTO{
		ID:        item.ID,
		Author:    item.Author,
		Quote:     item.Quote,
		Rating:    item.Rating,
		Approved:  item.Approved,
		CreatedAt: item.CreatedAt,
	}
}
