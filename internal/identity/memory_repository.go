package identity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
	byPhone map[string]string
	byIC    map[string]string
}

// NewMemoryRepository builds an in-memory user store for dev mode and tests.
// The secondary indexes enforce the same uniqueness the Postgres schema does.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
		byIC:    make(map[string]string),
	}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrDuplicate
	}
	if _, ok := r.byPhone[user.Phone]; ok {
		return ErrDuplicate
	}
	if _, ok := r.byIC[user.ICNumber]; ok {
		return ErrDuplicate
	}
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.byPhone[user.Phone] = user.ID
	r.byIC[user.ICNumber] = user.ID
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *memoryRepository) FindByPhone(ctx context.Context, phone string) (User, error) {
	r.mu.RLock()
	id, ok := r.byPhone[phone]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *memoryRepository) FindByICNumber(ctx context.Context, icNumber string) (User, error) {
	r.mu.RLock()
	id, ok := r.byIC[icNumber]
	r.mu.RUnlock()
	if !ok {
		return User{}, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *memoryRepository) Update(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return ErrNotFound
	}
	r.byID[user.ID] = user
	return nil
}
