package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in-progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderRequest is a validated order form submission.
type OrderRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service"`
	Budget  string `json:"budget,omitempty"`
	Details string `json:"details"`

	// HasPhone and HasBudget record whether the client sent the optional
	// field at all, so "" can be told apart from absent when relaying.
	HasPhone  bool `json:"-"`
	HasBudget bool `json:"-"`
}

// OrderRecord is an accepted order. JSON keys are camelCase so that
// orders.json files written by the previous site keep loading.
type OrderRecord struct {
	ID string `json:"id"`
	OrderRequest
	CreatedAt time.Time   `json:"createdAt"`
	Status    OrderStatus `json:"status"`
}
