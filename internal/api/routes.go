package api

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"respira-screen/backend/internal/store"
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	AllowedOrigins []string
	SilentDB       bool
}

// Server wires HTTP handlers with persistence, scoring and matching.
type Server struct {
	db             *store.Database
	allowedOrigins []string
	evalNotifier   *EvaluationNotifier
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}
	return &Server{
		db:             db,
		allowedOrigins: cfg.AllowedOrigins,
		evalNotifier:   NewEvaluationNotifier(),
	}, nil
}

// Close releases the underlying database handle.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/screening/score", s.handleScore)
		api.POST("/screening/recommend", s.handleRecommend)

		api.GET("/evaluations", s.handleListEvaluations)
		api.GET("/evaluations/stream", s.handleEvaluationStream)
		api.GET("/evaluations/:id", s.handleGetEvaluation)

		api.GET("/specialists", s.handleListSpecialists)
		api.GET("/specialists/:id", s.handleGetSpecialist)
		api.POST("/specialists", s.handleCreateSpecialist)
		api.PUT("/specialists/:id", s.handleUpdateSpecialist)
		api.DELETE("/specialists/:id", s.handleDeleteSpecialist)

		api.GET("/posts", s.handleListPosts)
		api.GET("/posts/:id", s.handleGetPost)
		api.POST("/posts", s.handleCreatePost)
		api.PUT("/posts/:id", s.handleUpdatePost)
		api.DELETE("/posts/:id", s.handleDeletePost)

		api.GET("/testimonials", s.handleListTestimonials)
		api.GET("/testimonials/:id", s.handleGetTestimonial)
		api.POST("/testimonials", s.handleCreateTestimonial)
		api.PUT("/testimonials/:id", s.handleUpdateTestimonial)
		api.DELETE("/testimonials/:id", s.handleDeleteTestimonial)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
