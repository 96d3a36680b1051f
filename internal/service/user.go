package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return user, nil
}
