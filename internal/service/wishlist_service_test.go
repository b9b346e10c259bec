package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/repository"
)

type failingWishlistRepository struct{ err error }

func (r failingWishlistRepository) Get(ctx context.Context, email string) ([]model.WishlistItem, error) {
	return nil, r.err
}

func (r failingWishlistRepository) Put(ctx context.Context, email string, items []model.WishlistItem) error {
	return r.err
}

func TestWishlistService_ToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &wishlistServiceImpl{repo: repository.NewMemoryWishlistRepository(), now: func() time.Time { return fixed }}

	item := model.WishlistItem{ID: "art-1", Title: "Dunes", Category: "Landscape", Image: "/img/dunes.jpg"}

	on, items, err := svc.Toggle(ctx, "a@b.com", item)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !on || len(items) != 1 || !items[0].AddedAt.Equal(fixed) {
		t.Fatalf("expected one item added at %v, got on=%v items=%+v", fixed, on, items)
	}

	listed, err := svc.List(ctx, "a@b.com")
	if err != nil || len(listed) != 1 || listed[0].ID != "art-1" {
		t.Fatalf("expected stored item, got %+v (err=%v)", listed, err)
	}

	on, items, err = svc.Toggle(ctx, "a@b.com", model.WishlistItem{ID: "art-1"})
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if on || len(items) != 0 {
		t.Errorf("expected item removed, got on=%v items=%+v", on, items)
	}
}

func TestWishlistService_ListsArePerUser(t *testing.T) {
	ctx := context.Background()
	svc := NewWishlistService(repository.NewMemoryWishlistRepository())
	if _, _, err := svc.Toggle(ctx, "a@b.com", model.WishlistItem{ID: "art-1"}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	other, err := svc.List(ctx, "c@d.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty wishlist for another user, got %+v", other)
	}
}

func TestWishlistService_Toggle_RequiresID(t *testing.T) {
	svc := NewWishlistService(repository.NewMemoryWishlistRepository())
	_, _, err := svc.Toggle(context.Background(), "a@b.com", model.WishlistItem{Title: "x"})
	assertPublic(t, err, http.StatusBadRequest, "Item id is required.")
}

func TestWishlistService_RepositoryError(t *testing.T) {
	svc := NewWishlistService(failingWishlistRepository{err: errors.New("redis down")})
	if _, err := svc.List(context.Background(), "a@b.com"); err == nil {
		t.Error("expected list error")
	}
	if _, _, err := svc.Toggle(context.Background(), "a@b.com", model.WishlistItem{ID: "x"}); err == nil {
		t.Error("expected toggle error")
	}
}
