package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/saqify/backend/internal/model"
)

const wishlistKeyPrefix = "saqify_wishlist:"

// RedisWishlistRepository stores each wishlist as a JSON array under saqify_wishlist:<email>.
type RedisWishlistRepository struct {
	client *redis.Client
}

// NewRedisWishlistRepository creates a RedisWishlistRepository.
func NewRedisWishlistRepository(client *redis.Client) *RedisWishlistRepository {
	return &RedisWishlistRepository{client: client}
}

var _ WishlistRepository = (*RedisWishlistRepository)(nil)

// Ping checks the Redis connection.
func (r *RedisWishlistRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisWishlistRepository) Get(ctx context.Context, email string) ([]model.WishlistItem, error) {
	raw, err := r.client.Get(ctx, wishlistKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.WishlistItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []model.WishlistItem
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []model.WishlistItem{}, nil
	}
	return items, nil
}

func (r *RedisWishlistRepository) Put(ctx context.Context, email string, items []model.WishlistItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, wishlistKeyPrefix+email, raw, 0).Err()
}
