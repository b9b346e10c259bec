package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saqify/backend/internal/model"
)

// PgOrderRepository is the PostgreSQL implementation of OrderRepository.
// Each Append is a single INSERT, so concurrent submissions never lose records.
type PgOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPgOrderRepository creates a PgOrderRepository backed by the given pool.
func NewPgOrderRepository(pool *pgxpool.Pool) *PgOrderRepository {
	return &PgOrderRepository{pool: pool}
}

var _ OrderRepository = (*PgOrderRepository)(nil)

func (r *PgOrderRepository) Append(ctx context.Context, rec *model.OrderRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders (id, name, email, phone, service, budget, details, status, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)`,
		rec.ID, rec.Name, rec.Email, rec.Phone, rec.Service, rec.Budget, rec.Details, string(rec.Status), rec.CreatedAt,
	)
	return err
}

func (r *PgOrderRepository) List(ctx context.Context) ([]*model.OrderRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, COALESCE(phone, ''), service, COALESCE(budget, ''), details, status, created_at
		 FROM orders
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*model.OrderRecord{}
	for rows.Next() {
		var o model.OrderRecord
		var status string
		if err := rows.Scan(&o.ID, &o.Name, &o.Email, &o.Phone, &o.Service, &o.Budget, &o.Details, &status, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Status = model.OrderStatus(status)
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
