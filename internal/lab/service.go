package lab

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Nickname    string
	Name        string
	Capacity    int
	Description string
}

type UpdateRequest struct {
	Name        *string
	Capacity    *int
	Description *string
	PhotoFileID *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Lab, error)
	GetByNickname(ctx context.Context, nickname string) (*Lab, error)
	List(ctx context.Context, filter Filter) ([]*Lab, int, error)
	Update(ctx context.Context, nickname string, req UpdateRequest) (*Lab, error)
	Delete(ctx context.Context, nickname string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Lab, error) {
	nickname := strings.ToUpper(strings.TrimSpace(req.Nickname))
	if nickname == "" {
		return nil, ErrEmptyNickname
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	l := &Lab{
		Nickname:    nickname,
		Name:        req.Name,
		Capacity:    req.Capacity,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) GetByNickname(ctx context.Context, nickname string) (*Lab, error) {
	return s.repo.GetByNickname(ctx, strings.ToUpper(strings.TrimSpace(nickname)))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Lab, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, nickname string, req UpdateRequest) (*Lab, error) {
	l, err := s.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		l.Name = *req.Name
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		l.Capacity = *req.Capacity
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.PhotoFileID != nil {
		l.PhotoFileID = req.PhotoFileID
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Delete(ctx context.Context, nickname string) error {
	l, err := s.GetByNickname(ctx, nickname)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, l.ID)
}
