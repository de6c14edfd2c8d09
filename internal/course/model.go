package course

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("course not found")
	ErrNameRequired = errors.New("name is required")
	ErrCodeRequired = errors.New("course code is required")
	ErrCodeTaken    = errors.New("course code already in use")
)

// Course is reference data: the subject a lab reservation is booked for.
type Course struct {
	ID          string
	Name        string
	Nickname    string
	CourseCode  string
	Period      string
	Capacity    int
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing courses.
type Filter struct {
	Keyword  string
	Period   string
	Page     int
	PageSize int
}
