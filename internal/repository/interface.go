package repository

import (
	"context"

	"github.com/saqify/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// UserRepository はユーザー永続化のインターフェース
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) error
}

// ContactRepository persists contact messages.
type ContactRepository interface {
	Save(ctx context.Context, msg *model.ContactMessage) error
}

// OrderRepository is the durable order collection.
type OrderRepository interface {
	// Append adds rec to the collection. Identifiers are not checked for collisions.
	Append(ctx context.Context, rec *model.OrderRecord) error
	// List returns every stored record, newest CreatedAt first.
	List(ctx context.Context) ([]*model.OrderRecord, error)
}

// WishlistRepository stores one wishlist per user email.
type WishlistRepository interface {
	Get(ctx context.Context, email string) ([]model.WishlistItem, error)
	Put(ctx context.Context, email string, items []model.WishlistItem) error
}
