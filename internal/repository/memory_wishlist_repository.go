package repository

import (
	"context"
	"sync"

	"github.com/saqify/backend/internal/model"
)

// MemoryWishlistRepository keeps wishlists in process memory.
type MemoryWishlistRepository struct {
	mu    sync.RWMutex
	lists map[string][]model.WishlistItem
}

// NewMemoryWishlistRepository creates an empty MemoryWishlistRepository.
func NewMemoryWishlistRepository() *MemoryWishlistRepository {
	return &MemoryWishlistRepository{lists: make(map[string][]model.WishlistItem)}
}

var _ WishlistRepository = (*MemoryWishlistRepository)(nil)

func (r *MemoryWishlistRepository) Get(_ context.Context, email string) ([]model.WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.WishlistItem{}, r.lists[email]...), nil
}

func (r *MemoryWishlistRepository) Put(_ context.Context, email string, items []model.WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[email] = append([]model.WishlistItem(nil), items...)
	return nil
}
