package student

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("student not found")
	ErrNameRequired      = errors.New("name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrEmailTaken        = errors.New("email already in use")
	ErrRegistrationTaken = errors.New("registration number already in use")
	ErrCourseNotFound    = errors.New("course not found")
)

// Student is reference data: a course member on the lab roster. Students do
// not log in; accounts that authenticate live in the user module.
type Student struct {
	ID                 string
	Name               string
	Email              string
	Phone              string
	RegistrationNumber string
	CourseCode         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Filter defines parameters for listing students.
type Filter struct {
	Keyword    string
	CourseCode string
	Page       int
	PageSize   int
}
