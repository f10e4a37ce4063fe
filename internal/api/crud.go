package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"respira-screen/backend/internal/store"
)

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func (s *Server) handleListSpecialists(c *gin.Context) {
	roster, err := s.db.ListSpecialists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list specialists"})
		return
	}
	dtos := make([]SpecialistDTO, 0, len(roster))
	for _, specialist := range roster {
		dtos = append(dtos, SpecialistFromModel(specialist))
	}
	c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleGetSpecialist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	specialist, err := s.db.GetSpecialist(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
		return
	}
	c.JSON(http.StatusOK, SpecialistFromModel(*specialist))
}

func (s *Server) handleCreateSpecialist(c *gin.Context) {
	var req SpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	specialist := store.Specialist{
		Name:  req.Name,
		Role:  req.Role,
		City:  req.City,
		Lat:   req.Lat,
		Lng:   req.Lng,
		Phone: req.Phone,
		Email: req.Email,
		Bio:   req.Bio,
	}
	if err := s.db.SaveSpecialist(&specialist); err != nil {
		logrus.WithError(err).Error("create specialist")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save specialist"})
		return
	}
	c.JSON(http.StatusCreated, SpecialistFromModel(specialist))
}

func (s *Server) handleUpdateSpecialist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := s.db.GetSpecialist(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "specialist not found"})
		return
	}
	var req SpecialistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = req.Name
	existing.Role = req.Role
	existing.City = req.City
	existing.Lat = req.Lat
	existing.Lng = req.Lng
	existing.Phone = req.Phone
	existing.Email = req.Email
	existing.Bio = req.Bio
	if err := s.db.SaveSpecialist(existing); err != nil {
		logrus.WithError(err).Error("update specialist")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save specialist"})
		return
	}
	c.JSON(http.StatusOK, SpecialistFromModel(*existing))
}

func (s *Server) handleDeleteSpecialist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.db.DeleteSpecialist(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete specialist"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListPosts(c *gin.Context) {
	publishedOnly := c.DefaultQuery("published", "false") == "true"
	posts, err := s.db.ListPosts(publishedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list posts"})
		return
	}
	dtos := make([]PostDTO, 0, len(posts))
	for _, post := range posts {
		dtos = append(dtos, PostFromModel(post))
	}
	c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleGetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := s.db.GetPost(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, PostFromModel(*post))
}

func (s *Server) handleCreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post := store.BlogPost{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Published: req.Published,
	}
	if err := s.db.SavePost(&post); err != nil {
		logrus.WithError(err).Error("create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save post"})
		return
	}
	c.JSON(http.StatusCreated, PostFromModel(post))
}

func (s *Server) handleUpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := s.db.GetPost(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Title = req.Title
	existing.Slug = req.Slug
	existing.Excerpt = req.Excerpt
	existing.Content = req.Content
	existing.Published = req.Published
	if err := s.db.SavePost(existing); err != nil {
		logrus.WithError(err).Error("update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save post"})
		return
	}
	c.JSON(http.StatusOK, PostFromModel(*existing))
}

func (s *Server) handleDeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.db.DeletePost(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete post"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListTestimonials(c *gin.Context) {
	approvedOnly := c.DefaultQuery("approved", "false") == "true"
	items, err := s.db.ListTestimonials(approvedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list testimonials"})
		return
	}
	dtos := make([]TestimonialDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, TestimonialFromModel(item))
	}
	c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleGetTestimonial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := s.db.GetTestimonial(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
		return
	}
	c.JSON(http.StatusOK, TestimonialFromModel(*item))
}

func (s *Server) handleCreateTestimonial(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item := store.Testimonial{
		Author:   req.Author,
		Quote:    req.Quote,
		Rating:   req.Rating,
		Approved: req.Approved,
	}
	if err := s.db.SaveTestimonial(&item); err != nil {
		logrus.WithError(err).Error("create testimonial")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save testimonial"})
		return
	}
	c.JSON(http.StatusCreated, TestimonialFromModel(item))
}

func (s *Server) handleUpdateTestimonial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	existing, err := s.db.GetTestimonial(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "testimonial not found"})
		return
	}
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Author = req.Author
	existing.Quote = req.Quote
	existing.Rating = req.Rating
	existing.Approved = req.Approved
	if err := s.db.SaveTestimonial(existing); err != nil {
		logrus.WithError(err).Error("update testimonial")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save testimonial"})
		return
	}
	c.JSON(http.StatusOK, TestimonialFromModel(*existing))
}

func (s *Server) handleDeleteTestimonial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.db.DeleteTestimonial(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete testimonial"})
		return
	}
	c.Status(http.StatusNoContent)
}
