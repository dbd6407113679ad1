package serviceimpl

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"taskboard/domain/models"
)

func TestSeedAccounts_Idempotent(t *testing.T) {
	repo := newMemUserRepo()
	ctx := context.Background()

	n, err := SeedAccounts(ctx, repo, DefaultSeedAccounts())
	if err != nil || n != 3 {
		t.Fatalf("Expected 3 accounts created, got %d (%v)", n, err)
	}

	n, err = SeedAccounts(ctx, repo, DefaultSeedAccounts())
	if err != nil || n != 0 {
		t.Fatalf("Expected second run to create nothing, got %d (%v)", n, err)
	}

	manager, err := repo.GetByEmail(ctx, "manager@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if manager.Role != models.RoleTaskManager {
		t.Errorf("Expected task_manager role, got %s", manager.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(manager.Password), []byte("manager123")) != nil {
		t.Errorf("Expected stored password to be a bcrypt hash of the seed password")
	}
}
