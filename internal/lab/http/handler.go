package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumusproject/lumus-backend/internal/auth"
	"github.com/lumusproject/lumus-backend/internal/file"
	"github.com/lumusproject/lumus-backend/internal/lab"
	"github.com/lumusproject/lumus-backend/internal/pkg/response"
)

const maxPhotoSizeBytes = 5 << 20 // 5 MiB

type Handler struct {
	service     lab.Service
	fileService file.Service
}

func NewHandler(service lab.Service, fileService file.Service) *Handler {
	return &Handler{
		service:     service,
		fileService: fileService,
	}
}

func (h *Handler) List(c *gin.Context) {
	var req ListLabsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	labs, total, err := h.service.List(c.Request.Context(), lab.Filter{
		Keyword:  req.Keyword,
		Active:   req.Active,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list labs"})
		return
	}

	items := make([]LabResponse, len(labs))
	for i, l := range labs {
		items[i] = NewLabResponse(l)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	l, err := h.service.GetByNickname(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		if errors.Is(err, lab.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get lab"})
		return
	}
	c.JSON(http.StatusOK, NewLabResponse(l))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLabRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), lab.CreateRequest{
		Nickname:    body.Nickname,
		Name:        body.Name,
		Capacity:    body.Capacity,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, lab.ErrNicknameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, lab.ErrEmptyName),
			errors.Is(err, lab.ErrEmptyNickname),
			errors.Is(err, lab.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create lab"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewLabResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateLabRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Update(c.Request.Context(), c.Param("nickname"), lab.UpdateRequest{
		Name:        body.Name,
		Capacity:    body.Capacity,
		Description: body.Description,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, lab.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
		case errors.Is(err, lab.ErrEmptyName), errors.Is(err, lab.ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update lab"})
		}
		return
	}

	c.JSON(http.StatusOK, NewLabResponse(l))
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		if errors.Is(err, lab.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete lab"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhoto stores a catalog photo for the lab and links it. The previous
// photo, if any, is left for the file module's cleanup.
func (h *Handler) UploadPhoto(c *gin.Context) {
	nickname := c.Param("nickname")

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	f, err := h.fileService.Upload(c.Request.Context(), file.UploadInput{
		FileHeader:   fileHeader,
		UserID:       auth.GetUserID(c),
		MaxSizeBytes: maxPhotoSizeBytes,
		AllowedTypes: []string{"image/jpeg", "image/png"},
		ResizeImage:  true,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.service.Update(c.Request.Context(), nickname, lab.UpdateRequest{
		PhotoFileID: &f.ID,
	}); err != nil {
		// Roll the orphaned upload back before reporting.
		_ = h.fileService.Delete(context.WithoutCancel(c.Request.Context()), f.ID)
		if errors.Is(err, lab.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_id": f.ID,
		"url":     file.FileURL(f.ID),
	})
}
