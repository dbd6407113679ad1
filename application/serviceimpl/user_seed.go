package serviceimpl

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskboard/domain/models"
	"taskboard/domain/repositories"
	"taskboard/pkg/apperror"
	"taskboard/pkg/logger"
)

type SeedAccount struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// DefaultSeedAccounts are the development accounts, one per role.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{Email: "admin@example.com", Username: "admin", Password: "admin123", FirstName: "Admin", LastName: "User", Role: models.RoleAdmin},
		{Email: "manager@example.com", Username: "manager", Password: "manager123", FirstName: "Task", LastName: "Manager", Role: models.RoleTaskManager},
		{Email: "user@example.com", Username: "user", Password: "user123", FirstName: "Regular", LastName: "User", Role: models.RoleTaskUser},
	}
}

// SeedAccounts creates the accounts whose email is not taken yet and
// returns how many were created. Existing accounts are left untouched.
func SeedAccounts(ctx context.Context, userRepo repositories.UserRepository, accounts []SeedAccount) (int, error) {
	created := 0
	for _, account := range accounts {
		email := strings.ToLower(strings.TrimSpace(account.Email))

		existing, err := userRepo.GetByEmail(ctx, email)
		if err != nil && !apperror.IsNotFound(err) {
			return created, err
		}
		if existing != nil {
			logger.InfoContext(ctx, "Account already exists", "email", email, "role", existing.Role)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, apperror.Internal("failed to hash password", err)
		}

		now := time.Now()
		user := &models.User{
			ID:        uuid.New(),
			Email:     email,
			Username:  account.Username,
			Password:  string(hashed),
			FirstName: account.FirstName,
			LastName:  account.LastName,
			Role:      account.Role,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return created, err
		}
		created++
		logger.InfoContext(ctx, "Account created", "email", email, "role", account.Role)
	}
	return created, nil
}
