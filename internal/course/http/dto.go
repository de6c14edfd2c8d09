package http

import (
	"time"

	"github.com/lumusproject/lumus-backend/internal/course"
)

type ListCoursesRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	Period   string `form:"period"`
}

type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Nickname    string `json:"nickname"`
	CourseCode  string `json:"course_code" binding:"required"`
	Period      string `json:"period"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=0"`
	Description string `json:"description"`
}

type UpdateCourseRequest struct {
	Name        *string `json:"name"`
	Nickname    *string `json:"nickname"`
	Period      *string `json:"period"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=0"`
	Description *string `json:"description"`
}

type CourseResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Nickname    string    `json:"nickname,omitempty"`
	CourseCode  string    `json:"course_code"`
	Period      string    `json:"period,omitempty"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCourseResponse(c *course.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Name:        c.Name,
		Nickname:    c.Nickname,
		CourseCode:  c.CourseCode,
		Period:      c.Period,
		Capacity:    c.Capacity,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
