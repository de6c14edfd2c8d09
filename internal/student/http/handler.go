package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumusproject/lumus-backend/internal/pkg/response"
	"github.com/lumusproject/lumus-backend/internal/student"
)

type Handler struct {
	service student.Service
}

func NewHandler(service student.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) respond(c *gin.Context, st *student.Student, err error, failMsg string) {
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMsg})
		return
	}
	c.JSON(http.StatusOK, NewStudentResponse(st))
}

func (h *Handler) List(c *gin.Context) {
	var req ListStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	students, total, err := h.service.List(c.Request.Context(), student.Filter{
		Keyword:    req.Keyword,
		CourseCode: req.CourseCode,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list students"})
		return
	}

	items := make([]StudentResponse, len(students))
	for i, s := range students {
		items[i] = NewStudentResponse(s)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), id)
	h.respond(c, st, err, "failed to get student")
}

func (h *Handler) GetByEmail(c *gin.Context) {
	st, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	h.respond(c, st, err, "failed to get student")
}

func (h *Handler) GetByRegistration(c *gin.Context) {
	st, err := h.service.GetByRegistration(c.Request.Context(), c.Param("number"))
	h.respond(c, st, err, "failed to get student")
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateStudentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	st, err := h.service.Create(c.Request.Context(), student.CreateRequest{
		Name:               body.Name,
		Email:              body.Email,
		Phone:              body.Phone,
		RegistrationNumber: body.RegistrationNumber,
		CourseCode:         body.CourseCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, student.ErrEmailTaken), errors.Is(err, student.ErrRegistrationTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, student.ErrNameRequired), errors.Is(err, student.ErrEmailRequired),
			errors.Is(err, student.ErrCourseNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create student"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewStudentResponse(st))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStudentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	st, err := h.service.Update(c.Request.Context(), id, student.UpdateRequest{
		Name:               body.Name,
		Email:              body.Email,
		Phone:              body.Phone,
		RegistrationNumber: body.RegistrationNumber,
		CourseCode:         body.CourseCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, student.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		case errors.Is(err, student.ErrEmailTaken), errors.Is(err, student.ErrRegistrationTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, student.ErrNameRequired), errors.Is(err, student.ErrEmailRequired),
			errors.Is(err, student.ErrCourseNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update student"})
		}
		return
	}

	c.JSON(http.StatusOK, NewStudentResponse(st))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}
	c.Status(http.StatusNoContent)
}
