package user

import (
	"errors"
	"time"
)

// Account types.
const (
	TypeSeller = "seller"
	TypeBuyer  = "buyer"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrInvalidToken   = errors.New("the token or email is incorrectly specified")
)

// User represents an account in the system. Sellers own a catalog, buyers
// own baskets and orders.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ConfirmToken is a one-shot email confirmation credential: created on
// registration, deleted on successful confirmation.
type ConfirmToken struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}
