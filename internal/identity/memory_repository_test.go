package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newUser(email, phone, ic string) User {
	return User{
		ID:        uuid.NewString(),
		Username:  "member",
		Email:     email,
		Phone:     phone,
		ICNumber:  ic,
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("a@b.com", "+60123456789", "IC1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name string
		user User
	}{
		{"duplicate email", newUser("a@b.com", "+60999999999", "IC2")},
		{"duplicate phone", newUser("c@d.com", "+60123456789", "IC3")},
		{"duplicate ic number", newUser("e@f.com", "+60888888888", "IC1")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.Create(ctx, tc.user); err != ErrDuplicate {
				t.Fatalf("expected ErrDuplicate, got %v", err)
			}
		})
	}
}

func TestMemoryRepositoryLookupsAndUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newUser("a@b.com", "+60123456789", "IC1")
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, find := range []func() (User, error){
		func() (User, error) { return repo.FindByID(ctx, u.ID) },
		func() (User, error) { return repo.FindByEmail(ctx, "a@b.com") },
		func() (User, error) { return repo.FindByPhone(ctx, "+60123456789") },
		func() (User, error) { return repo.FindByICNumber(ctx, "IC1") },
	} {
		got, err := find()
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if got.ID != u.ID {
			t.Fatalf("lookup returned wrong user %s", got.ID)
		}
	}

	if _, err := repo.FindByICNumber(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	u.EmailConfirmed = true
	u.EmailOTP = "4321"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if !got.EmailConfirmed || got.EmailOTP != "4321" {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := repo.Update(ctx, newUser("x@y.com", "+60111111111", "IC9")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on unknown update, got %v", err)
	}
}
