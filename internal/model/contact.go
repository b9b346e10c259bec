package model

import "time"

// ContactMessage represents a message submitted via the contact form.
// ID and CreatedAt are only populated when a contact store persists the message.
type ContactMessage struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}
