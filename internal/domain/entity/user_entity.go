package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
