package repository

import (
	"sort"

	"github.com/saqify/backend/internal/model"
)

// sortNewestFirst orders records by CreatedAt descending. Ties keep their stored order.
func sortNewestFirst(orders []*model.OrderRecord) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
