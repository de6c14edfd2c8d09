package student

import (
	"context"
	"errors"
	"strings"

	"github.com/lumusproject/lumus-backend/internal/course"
)

type CreateRequest struct {
	Name               string
	Email              string
	Phone              string
	RegistrationNumber string
	CourseCode         string
}

type UpdateRequest struct {
	Name               *string
	Email              *string
	Phone              *string
	RegistrationNumber *string
	CourseCode         *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByRegistration(ctx context.Context, number string) (*Student, error)
	List(ctx context.Context, filter Filter) ([]*Student, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Student, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo          Repository
	courseService course.Service
}

func NewService(repo Repository, courseService course.Service) Service {
	return &service{repo: repo, courseService: courseService}
}

// checkCourse verifies the code refers to an existing course. An empty code
// is allowed: a student may be enrolled before course assignment.
func (s *service) checkCourse(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	if _, err := s.courseService.GetByCode(ctx, code); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Student, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	code := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	if err := s.checkCourse(ctx, code); err != nil {
		return nil, err
	}

	st := &Student{
		Name:               req.Name,
		Email:              email,
		Phone:              req.Phone,
		RegistrationNumber: strings.TrimSpace(req.RegistrationNumber),
		CourseCode:         code,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Student, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (*Student, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *service) GetByRegistration(ctx context.Context, number string) (*Student, error) {
	return s.repo.GetByRegistration(ctx, strings.TrimSpace(number))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Student, int, error) {
	filter.CourseCode = strings.ToUpper(strings.TrimSpace(filter.CourseCode))
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		st.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, ErrEmailRequired
		}
		st.Email = email
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.RegistrationNumber != nil {
		st.RegistrationNumber = strings.TrimSpace(*req.RegistrationNumber)
	}
	if req.CourseCode != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.CourseCode))
		if err := s.checkCourse(ctx, code); err != nil {
			return nil, err
		}
		st.CourseCode = code
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
