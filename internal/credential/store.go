package credential

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/koperasi-tentera/authapi/internal/identity"
)

// PIN policy: exactly six ASCII digits.
const pinLength = 6

var (
	// ErrExists means the user already has a PIN; use Change instead.
	ErrExists = errors.New("pin already set")
	// ErrMismatch means the supplied PIN does not match the stored one.
	ErrMismatch = errors.New("pin mismatch")
	// ErrBadFormat means the PIN violates the six-digit policy.
	ErrBadFormat = errors.New("pin must be exactly 6 digits")
)

// Store manages the PIN credential tied to a user.
type Store interface {
	Verify(ctx context.Context, userID, pin string) error
	Set(ctx context.Context, userID, pin string) error
	Change(ctx context.Context, userID, oldPIN, newPIN string) error
}

// BcryptStore hashes PINs with bcrypt and persists them on the user record.
type BcryptStore struct {
	users identity.Repository
}

// NewBcryptStore builds a PIN store over the given user repository.
func NewBcryptStore(users identity.Repository) *BcryptStore {
	return &BcryptStore{users: users}
}

// Verify compares the supplied PIN against the stored hash.
func (s *BcryptStore) Verify(ctx context.Context, userID, pin string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPIN() {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword(user.PINHash, []byte(pin)); err != nil {
		return ErrMismatch
	}
	return nil
}

// Set stores a first-time PIN. It refuses to overwrite an existing one.
func (s *BcryptStore) Set(ctx context.Context, userID, pin string) error {
	if !validPIN(pin) {
		return ErrBadFormat
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.HasPIN() {
		return ErrExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PINHash = hash
	return s.users.Update(ctx, user)
}

// Change verifies the old PIN, then replaces it with the new one. The
// verify-then-set pair is not atomic; a single writer per user is assumed.
func (s *BcryptStore) Change(ctx context.Context, userID, oldPIN, newPIN string) error {
	if !validPIN(newPIN) {
		return ErrBadFormat
	}
	if err := s.Verify(ctx, userID, oldPIN); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PINHash = hash
	return s.users.Update(ctx, user)
}

func validPIN(pin string) bool {
	if len(pin) != pinLength {
		return false
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
