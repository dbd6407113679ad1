package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskboard/domain/dto"
	"taskboard/domain/models"
	"taskboard/pkg/apperror"
	"taskboard/pkg/utils"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *memUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			c := *u
			return &c, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Username == username })
}

func (r *memUserRepo) Update(ctx context.Context, id uuid.UUID, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *user
	r.users[id] = &c
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUserRepo(), "test-secret", time.Hour)

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Email: "Ada@Example.com", Username: "ada", Password: "correct-horse", FirstName: "Ada", LastName: "L",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleTaskUser || user.Email != "ada@example.com" {
		t.Errorf("Expected task_user with normalized email, got %s %s", user.Role, user.Email)
	}
	if user.Password == "correct-horse" {
		t.Errorf("Expected password to be hashed")
	}

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "ada@example.com", Username: "other", Password: "correct-horse"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict on duplicate email, got %v", err)
	}

	token, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	claims, err := utils.ValidateTokenStringToUUID(token, "test-secret")
	if err != nil || claims.ID != user.ID || claims.Role != models.RoleTaskUser {
		t.Errorf("Expected token for the registered user, got %+v %v", claims, err)
	}

	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"}); err == nil {
		t.Errorf("Expected wrong password to fail")
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUserRepo(), "test-secret", time.Hour)
	user, err := svc.Register(ctx, &dto.RegisterRequest{Email: "bo@example.com", Username: "bo", Password: "first-pass"})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "second-pass", ConfirmPassword: "second-pass"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Expected validation error for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "first-pass", NewPassword: "second-pass", ConfirmPassword: "second-pass"}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Login(ctx, &dto.LoginRequest{Email: "bo@example.com", Password: "second-pass"}); err != nil {
		t.Errorf("Expected login with the new password, got %v", err)
	}
}
