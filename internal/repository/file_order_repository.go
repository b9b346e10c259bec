package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/saqify/backend/internal/model"
	"github.com/saqify/backend/internal/storage"
)

// FileOrderRepository keeps every order in one JSON array document.
//
// Append is read-modify-write of the whole document with no locking. Two
// concurrent Appends can read the same snapshot, and the later Save then
// drops the earlier record. Use PgOrderRepository where that matters.
type FileOrderRepository struct {
	store storage.Storage
	key   string
}

// NewFileOrderRepository creates a FileOrderRepository storing the collection under key.
func NewFileOrderRepository(store storage.Storage, key string) *FileOrderRepository {
	return &FileOrderRepository{store: store, key: key}
}

var _ OrderRepository = (*FileOrderRepository)(nil)

func (r *FileOrderRepository) Append(ctx context.Context, rec *model.OrderRecord) error {
	orders, err := r.load(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, rec)

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}
	return r.store.Save(ctx, r.key, bytes.NewReader(data))
}

func (r *FileOrderRepository) List(ctx context.Context) ([]*model.OrderRecord, error) {
	orders, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return orders, nil
}

// load returns the stored collection. A missing or unparsable document is
// treated as empty; only I/O failures are errors.
func (r *FileOrderRepository) load(ctx context.Context) ([]*model.OrderRecord, error) {
	data, err := r.store.Load(ctx, r.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []*model.OrderRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	var orders []*model.OrderRecord
	if err := json.Unmarshal(data, &orders); err != nil {
		slog.Warn("order collection unreadable, treating as empty", "key", r.key, "error", err)
		return []*model.OrderRecord{}, nil
	}
	out := make([]*model.OrderRecord, 0, len(orders))
	for _, o := range orders {
		if o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}
