package seller

import "context"

// Repository defines data access for sellers.
type Repository interface {
	// GetByUser returns the seller record owned by the given user.
	GetByUser(ctx context.Context, userID int64) (*Seller, error)

	// ListAccepting returns sellers currently accepting orders.
	ListAccepting(ctx context.Context) ([]*Seller, error)

	// SetAcceptingOrders flips the order-acceptance flag for the user's
	// seller; returns the number of rows updated.
	SetAcceptingOrders(ctx context.Context, userID int64, accepting bool) (int64, error)
}
