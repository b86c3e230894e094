package credential

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/koperasi-tentera/authapi/internal/identity"
)

func seedUser(t *testing.T, repo identity.Repository) identity.User {
	t.Helper()
	u := identity.User{
		ID:        uuid.NewString(),
		Username:  "member",
		Email:     "a@b.com",
		Phone:     "+60123456789",
		ICNumber:  "IC1",
		Role:      identity.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSetVerifyChange(t *testing.T) {
	repo := identity.NewMemoryRepository()
	store := NewBcryptStore(repo)
	ctx := context.Background()
	u := seedUser(t, repo)

	if err := store.Set(ctx, u.ID, "123456"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Verify(ctx, u.ID, "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := store.Verify(ctx, u.ID, "000000"); err != ErrMismatch {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}

	// second Set must refuse to overwrite
	if err := store.Set(ctx, u.ID, "654321"); err != ErrExists {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	if err := store.Change(ctx, u.ID, "123456", "654321"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if err := store.Verify(ctx, u.ID, "654321"); err != nil {
		t.Fatalf("verify new pin: %v", err)
	}
}

func TestChangeWrongOldPINLeavesCredential(t *testing.T) {
	repo := identity.NewMemoryRepository()
	store := NewBcryptStore(repo)
	ctx := context.Background()
	u := seedUser(t, repo)

	if err := store.Set(ctx, u.ID, "123456"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Change(ctx, u.ID, "000000", "111111"); err != ErrMismatch {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}
	// stored credential unchanged
	if err := store.Verify(ctx, u.ID, "123456"); err != nil {
		t.Fatalf("original pin no longer verifies: %v", err)
	}
}

func TestPINPolicy(t *testing.T) {
	repo := identity.NewMemoryRepository()
	store := NewBcryptStore(repo)
	ctx := context.Background()
	u := seedUser(t, repo)

	for _, pin := range []string{"", "123", "12345", "1234567", "12345a", "12 456"} {
		if err := store.Set(ctx, u.ID, pin); err != ErrBadFormat {
			t.Errorf("Set(%q): expected ErrBadFormat, got %v", pin, err)
		}
	}
}

func TestVerifyUnknownUser(t *testing.T) {
	store := NewBcryptStore(identity.NewMemoryRepository())
	if err := store.Verify(context.Background(), uuid.NewString(), "123456"); err != identity.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
