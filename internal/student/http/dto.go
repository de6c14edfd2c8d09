package http

import (
	"time"

	"github.com/lumusproject/lumus-backend/internal/student"
)

type ListStudentsRequest struct {
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Keyword    string `form:"keyword"`
	CourseCode string `form:"course_code"`
}

type CreateStudentRequest struct {
	Name               string `json:"name" binding:"required"`
	Email              string `json:"email" binding:"required,email"`
	Phone              string `json:"phone"`
	RegistrationNumber string `json:"registration_number"`
	CourseCode         string `json:"course_code"`
}

type UpdateStudentRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone"`
	RegistrationNumber *string `json:"registration_number"`
	CourseCode         *string `json:"course_code"`
}

type StudentResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	CourseCode         string    `json:"course_code,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewStudentResponse(s *student.Student) StudentResponse {
	return StudentResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		Phone:              s.Phone,
		RegistrationNumber: s.RegistrationNumber,
		CourseCode:         s.CourseCode,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
