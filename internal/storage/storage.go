package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Load when no object exists under key.
var ErrNotFound = errors.New("storage: not found")

// Storage は小さなドキュメント（JSON コレクション等）の読み書きを抽象化するインターフェース。
// Save は key の内容を丸ごと置き換える。追記はサポートしない。
type Storage interface {
	// Load returns the full contents stored under key.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the contents stored under key.
	Save(ctx context.Context, key string, data io.Reader) error
}
