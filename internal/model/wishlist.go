package model

import "time"

// WishlistItem is a gallery piece saved by a signed-in user.
type WishlistItem struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Image    string    `json:"image"`
	AddedAt  time.Time `json:"addedAt"`
}
