package models

import "github.com/google/uuid"

// User is a durable account row. Ephemeral users are created on the fly for
// guests joining a room without credentials; they can be claimed later.
type User struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
	Username string    `json:"username"`

	IsEphemeral bool `json:"is_ephemeral"`
	IsAdmin     bool `json:"is_admin"`
}
