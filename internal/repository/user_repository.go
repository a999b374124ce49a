package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/bookshop/internal/model"
)

// UserRepository is the storage contract for accounts. Implementations
// assign IDs and enforce username/email uniqueness on Insert.
type UserRepository interface {
	Insert(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Count(ctx context.Context) (int, error)
}

// MemoryUserRepo keeps users in process memory, keyed by ID with a
// secondary index on username and email.
type MemoryUserRepo struct {
	mu         sync.RWMutex
	nextID     atomic.Uint64
	byID       map[uint64]model.User
	byUsername map[string]uint64
	byEmail    map[string]uint64
}

var _ UserRepository = (*MemoryUserRepo)(nil)

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{
		byID:       make(map[uint64]model.User),
		byUsername: make(map[string]uint64),
		byEmail:    make(map[string]uint64),
	}
}

// Insert stores u with a fresh ID and returns the stored record. The ID
// and RegisteredAt fields of u are ignored. ErrUserExists is returned when
// either the username or the email is already registered.
func (r *MemoryUserRepo) Insert(ctx context.Context, u model.User) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[u.Username]; ok {
		return model.User{}, ErrUserExists
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return model.User{}, ErrUserExists
	}
	u.ID = r.nextID.Add(1)
	u.RegisteredAt = time.Now().UTC()
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	r.byEmail[u.Email] = u.ID
	return u, nil
}

// GetByID fetches a user by id.
func (r *MemoryUserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return u, nil
}

// GetByUsername fetches a user by exact username.
func (r *MemoryUserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}

// Count returns the number of registered users.
func (r *MemoryUserRepo) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
