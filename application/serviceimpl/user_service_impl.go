package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
	"taskboard/pkg/utils"
)

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewUserService(userRepo repositories.UserRepository, jwtSecret string, jwtTTL time.Duration) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, _ := s.userRepo.GetByEmail(ctx, email)
	if existingUser != nil {
		logger.WarnContext(ctx, "Email already exists", "email", email)
		return nil, apperror.Conflict("email already exists")
	}

	existingUser, _ = s.userRepo.GetByUsername(ctx, req.Username)
	if existingUser != nil {
		logger.WarnContext(ctx, "Username already exists", "username", req.Username)
		return nil, apperror.Conflict("username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  req.Username,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleTaskUser,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User created successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		logger.WarnContext(ctx, "Login failed - email not found", "email", email)
		return "", nil, apperror.Validation("invalid email or password")
	}

	if !user.IsActive {
		logger.WarnContext(ctx, "Login failed - account disabled", "user_id", user.ID)
		return "", nil, apperror.PermissionDenied("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", nil, apperror.Validation("invalid email or password")
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to generate JWT", "user_id", user.ID, "error", err)
		return "", nil, apperror.Internal("failed to generate token", err)
	}

	logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "User not found for profile update", "user_id", userID)
		return nil, apperror.NotFound("user not found")
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, userID, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update user profile", "user_id", userID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "User profile updated", "user_id", userID)
	return user, nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return apperror.NotFound("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		logger.WarnContext(ctx, "Change password failed - wrong current password", "user_id", userID)
		return apperror.Validation("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.Internal("failed to hash password", err)
	}
	user.Password = string(hashedPassword)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, userID, user); err != nil {
		logger.ErrorContext(ctx, "Failed to change password", "user_id", userID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Password changed", "user_id", userID)
	return nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	users, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list users", "error", err)
		return nil, 0, err
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to count users", "error", err)
		return nil, 0, err
	}
	return users, count, nil
}

func (s *UserServiceImpl) GenerateJWT(user *models.User) (string, error) {
	return utils.GenerateToken(utils.UserContext{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, s.jwtSecret, s.jwtTTL)
}
