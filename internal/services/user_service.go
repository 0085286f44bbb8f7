package services

import (
	"context"

	model "task-track-system.com/task-track-system/internal/models"
	repository "task-track-system.com/task-track-system/internal/repositories"
)

type UserService struct {
	repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*model.User, error) {
	return s.repo.Create(ctx, name, email)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}
