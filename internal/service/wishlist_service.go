package service

import (
	"context"
	"sync"
	"time"

	"github.com/saqify/backend/internal/apperr"
	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/repository"
)

// WishlistService manages the signed-in user's saved gallery pieces.
type WishlistService interface {
	List(ctx context.Context, email string) ([]model.WishlistItem, error)
	// Toggle adds item when absent and removes it when present. It reports
	// whether the item is wishlisted afterwards.
	Toggle(ctx context.Context, email string, item model.WishlistItem) (bool, []model.WishlistItem, error)
}

type wishlistServiceImpl struct {
	repo repository.WishlistRepository
	now  func() time.Time
	// serializes toggles within this process; separate instances sharing
	// Redis are not coordinated
	mu sync.Mutex
}

// NewWishlistService creates a WishlistService.
func NewWishlistService(repo repository.WishlistRepository) WishlistService {
	return &wishlistServiceImpl{repo: repo, now: time.Now}
}

func (s *wishlistServiceImpl) List(ctx context.Context, email string) ([]model.WishlistItem, error) {
	items, err := s.repo.Get(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err, "load wishlist")
	}
	return items, nil
}

func (s *wishlistServiceImpl) Toggle(ctx context.Context, email string, item model.WishlistItem) (bool, []model.WishlistItem, error) {
	if item.ID == "" {
		return false, nil, apperr.BadInput("Item id is required.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx, email)
	if err != nil {
		return false, nil, apperr.Internal(err, "load wishlist")
	}

	updated := make([]model.WishlistItem, 0, len(current)+1)
	removed := false
	for _, it := range current {
		if it.ID == item.ID {
			removed = true
			continue
		}
		updated = append(updated, it)
	}
	if !removed {
		item.AddedAt = s.now().UTC()
		updated = append(updated, item)
	}

	if err := s.repo.Put(ctx, email, updated); err != nil {
		return false, nil, apperr.Internal(err, "save wishlist")
	}
	return !removed, updated, nil
}
