package lab

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("lab not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrEmptyNickname   = errors.New("nickname cannot be empty")
	ErrNicknameTaken   = errors.New("nickname already in use")
	ErrInvalidCapacity = errors.New("capacity must be positive")
)

// Lab represents one bookable laboratory. The nickname (e.g. LAB01) is the
// stable public identifier reservations reference.
type Lab struct {
	ID          string
	Nickname    string
	Name        string
	Capacity    int
	Description string
	PhotoFileID *string
	IsActive    bool
	CreatedAt   time.Time
}

// Filter defines parameters for listing labs.
type Filter struct {
	Keyword  string // matches name or nickname
	Active   *bool
	Page     int
	PageSize int
}
