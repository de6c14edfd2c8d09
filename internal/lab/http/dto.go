package http

import (
	"time"

	"github.com/lumusproject/lumus-backend/internal/file"
	"github.com/lumusproject/lumus-backend/internal/lab"
)

type ListLabsRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	Active   *bool  `form:"active"`
}

type CreateLabRequest struct {
	Nickname    string `json:"nickname" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Description string `json:"description"`
}

type UpdateLabRequest struct {
	Name        *string `json:"name"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type LabResponse struct {
	ID          string    `json:"id"`
	Nickname    string    `json:"nickname"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewLabResponse(l *lab.Lab) LabResponse {
	resp := LabResponse{
		ID:          l.ID,
		Nickname:    l.Nickname,
		Name:        l.Name,
		Capacity:    l.Capacity,
		Description: l.Description,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
	}
	if l.PhotoFileID != nil {
		url := file.FileURL(*l.PhotoFileID)
		resp.PhotoURL = &url
	}
	return resp
}
