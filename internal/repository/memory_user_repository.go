package repository

import (
	"context"
	"sync"
	"time"

	"github.com/saqify/backend/internal/model"
)

// MemoryUserRepository is a process-local UserRepository for the demo sign-in.
// Accounts are lost on restart.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []*model.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

var _ UserRepository = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) FindByGoogleID(_ context.Context, googleID string) (*model.User, error) {
	if googleID == "" {
		return nil, ErrNotFound
	}
	return r.find(func(u *model.User) bool { return u.GoogleID == googleID })
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *MemoryUserRepository) find(match func(*model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
