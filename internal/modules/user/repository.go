package user

import "context"

// Repository defines data access for users and their confirmation tokens.
type Repository interface {
	// CreateUser persists a new inactive user together with its confirmation
	// token in a single transaction.
	CreateUser(ctx context.Context, u *User, tokenKey string) error

	// GetUserByEmail retrieves a user by unique email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, id int64) (*User, error)

	// UpdateUser saves email, password hash and type of an existing user.
	UpdateUser(ctx context.Context, u *User) error

	// ConsumeConfirmToken activates the user matching (email, key) and
	// deletes the token, atomically. Returns ErrInvalidToken when no such
	// token exists.
	ConsumeConfirmToken(ctx context.Context, email, key string) error
}
