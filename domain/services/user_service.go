package services

import (
	"context"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error
	ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	GenerateJWT(user *models.User) (string, error)
}
