package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumusproject/lumus-backend/internal/course"
	"github.com/lumusproject/lumus-backend/internal/pkg/response"
)

type Handler struct {
	service course.Service
}

func NewHandler(service course.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListCoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	courses, total, err := h.service.List(c.Request.Context(), course.Filter{
		Keyword:  req.Keyword,
		Period:   req.Period,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courses"})
		return
	}

	items := make([]CourseResponse, len(courses))
	for i, crs := range courses {
		items[i] = NewCourseResponse(crs)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	crs, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get course"})
		return
	}
	c.JSON(http.StatusOK, NewCourseResponse(crs))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	crs, err := h.service.Create(c.Request.Context(), course.CreateRequest{
		Name:        body.Name,
		Nickname:    body.Nickname,
		CourseCode:  body.CourseCode,
		Period:      body.Period,
		Capacity:    body.Capacity,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, course.ErrCodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, course.ErrNameRequired), errors.Is(err, course.ErrCodeRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create course"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewCourseResponse(crs))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateCourseRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	crs, err := h.service.Update(c.Request.Context(), c.Param("code"), course.UpdateRequest{
		Name:        body.Name,
		Nickname:    body.Nickname,
		Period:      body.Period,
		Capacity:    body.Capacity,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, course.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		case errors.Is(err, course.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update course"})
		}
		return
	}

	c.JSON(http.StatusOK, NewCourseResponse(crs))
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete course"})
		return
	}
	c.Status(http.StatusNoContent)
}
