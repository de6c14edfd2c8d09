package course

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name        string
	Nickname    string
	CourseCode  string
	Period      string
	Capacity    int
	Description string
}

type UpdateRequest struct {
	Name        *string
	Nickname    *string
	Period      *string
	Capacity    *int
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Course, error)
	GetByCode(ctx context.Context, code string) (*Course, error)
	List(ctx context.Context, filter Filter) ([]*Course, int, error)
	Update(ctx context.Context, code string, req UpdateRequest) (*Course, error)
	Delete(ctx context.Context, code string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Course, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	code := strings.ToUpper(strings.TrimSpace(req.CourseCode))
	if code == "" {
		return nil, ErrCodeRequired
	}

	c := &Course{
		Name:        req.Name,
		Nickname:    req.Nickname,
		CourseCode:  code,
		Period:      req.Period,
		Capacity:    req.Capacity,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByCode(ctx context.Context, code string) (*Course, error) {
	return s.repo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Course, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, code string, req UpdateRequest) (*Course, error) {
	c, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = *req.Name
	}
	if req.Nickname != nil {
		c.Nickname = *req.Nickname
	}
	if req.Period != nil {
		c.Period = *req.Period
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, code string) error {
	c, err := s.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, c.ID)
}
