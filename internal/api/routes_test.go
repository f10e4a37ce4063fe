package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"respira-screen/backend/internal/store"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server, err := NewServer(Config{
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
		SilentDB: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })

	router, err := server.Router()
	require.NoError(t, err)
	return server, router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	_, router := newTestServer(t)
	rec := doJSON(t, router, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestScoreEndpoint(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/screening/score", map[string]any{
		"age_bracket":     "3-5 anos",
		"breathing_signs": []string{"respira pela boca", "ronco"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AssessmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 39, resp.Score)
	assert.Equal(t, "baixa", resp.Confidence)
	assert.NotEmpty(t, resp.Reasoning)
	assert.NotEmpty(t, resp.TreatmentRecommendation)
}

func TestScoreEndpointRejectsMalformedPayload(t *testing.T) {
	_, router := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/screening/score", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendWithRoster(t *testing.T) {
	server, router := newTestServer(t)

	require.NoError(t, server.db.SaveSpecialist(&store.Specialist{
		Name: "Dra. Ana", Role: "Dentista do Sono", City: "Faro", Lat: 37.0194, Lng: -7.9304,
	}))
	require.NoError(t, server.db.SaveSpecialist(&store.Specialist{
		Name: "Dr. Bruno", Role: "Ortodontista", City: "Lisboa", Lat: 38.7223, Lng: -9.1393,
	}))

	rec := doJSON(t, router, http.MethodPost, "/api/screening/recommend", map[string]any{
		"age_bracket":        "3-5 anos",
		"breathing_signs":    []string{"a", "b", "c"},
		"dental_issues":      []string{"a", "b"},
		"oral_habits":        []string{"chupeta"},
		"posture":            "Sim, frequentemente",
		"sleep_quality":      "Ruim, dorme de boca aberta",
		"previous_treatment": "Não, nunca",
		"location": map[string]any{
			"city":   "Lisboa",
			"coords": map[string]float64{"lat": 38.7, "lng": -9.1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.GreaterOrEqual(t, resp.Score, 70)
	assert.Equal(t, "alta", resp.Confidence)
	require.NotNil(t, resp.RecommendedSpecialist)
	assert.Equal(t, "Dr. Bruno", resp.RecommendedSpecialist.Name)

	// The evaluation is persisted and visible to the staff listing.
	listRec := doJSON(t, router, http.MethodGet, "/api/evaluations", nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	var listing EvaluationsResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &listing))
	require.Equal(t, int64(1), listing.Total)
	assert.Equal(t, resp.ID, listing.Items[0].ID)

	getRec := doJSON(t, router, http.MethodGet, "/api/evaluations/"+resp.ID, nil)
	assert.Equal(t, http.StatusOK, getRec.Code)
}

func TestRecommendEmptyRoster(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/screening/recommend", map[string]any{
		"age_bracket": "3-5 anos",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp EvaluationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.RecommendedSpecialist)
	assert.Equal(t, 15, resp.Score)
	assert.NotEmpty(t, resp.Reasoning)
}

func TestSpecialistCRUD(t *testing.T) {
	_, router := newTestServer(t)

	// Missing name fails binding validation.
	rec := doJSON(t, router, http.MethodPost, "/api/specialists", map[string]any{
		"role": "Ortodontista",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Out-of-range latitude is rejected at the roster boundary.
	rec = doJSON(t, router, http.MethodPost, "/api/specialists", map[string]any{
		"name": "Dr. X", "role": "Ortodontista", "lat": 123.0, "lng": 0.0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/specialists", map[string]any{
		"name": "Dr. Bruno", "role": "Ortodontista", "city": "Lisboa",
		"lat": 38.7223, "lng": -9.1393,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created SpecialistDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/api/specialists", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var roster []SpecialistDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roster))
	assert.Len(t, roster, 1)

	rec = doJSON(t, router, http.MethodPut, "/api/specialists/1", map[string]any{
		"name": "Dr. Bruno Silva", "role": "Ortodontista", "city": "Lisboa",
		"lat": 38.7223, "lng": -9.1393,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated SpecialistDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Dr. Bruno Silva", updated.Name)

	rec = doJSON(t, router, http.MethodDelete, "/api/specialists/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/specialists/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostAndTestimonialCRUD(t *testing.T) {
	_, router := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/posts", map[string]any{
		"title": "Respiração bucal em crianças", "content": "...", "published": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	assert.Equal(t, "respiracao-bucal-em-criancas", post.Slug)

	rec = doJSON(t, router, http.MethodGet, "/api/posts?published=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []PostDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Len(t, posts, 1)

	rec = doJSON(t, router, http.MethodPost, "/api/testimonials", map[string]any{
		"author": "Maria", "quote": "A avaliação ajudou muito.", "rating": 5, "approved": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/testimonials", map[string]any{
		"author": "João", "quote": "Nota fora da escala.", "rating": 9,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/testimonials?approved=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []TestimonialDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}
