package user

import "context"

// Service defines the interface for user-related business logic.
type Service interface {
	// Register creates an inactive user, issues a confirmation token and
	// emails it to the new user.
	Register(ctx context.Context, email, password, accountType string) (*User, error)

	// Confirm consumes the confirmation token and activates the user.
	Confirm(ctx context.Context, email, token string) error

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id int64) (*User, error)

	// UpdateDetails partially updates the caller's account. Empty fields are
	// left unchanged; a non-empty password is validated and re-hashed.
	UpdateDetails(ctx context.Context, id int64, req UpdateDetailsRequest) (*User, error)
}

// UpdateDetailsRequest holds the partial-update payload for account details.
type UpdateDetailsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}
