package order

import "context"

// Repository defines data access for orders and baskets.
type Repository interface {
	// GetOrCreateBasket returns the user's singleton basket order, creating
	// it if absent. Concurrent calls for the same user converge on one row.
	GetOrCreateBasket(ctx context.Context, userID int64) (*Order, error)

	// AddItems inserts items into the order atomically. A duplicate listing
	// in the order aborts the whole batch with ErrDuplicateItem; an unknown
	// listing aborts with ErrProductNotFound. Returns the number inserted.
	AddItems(ctx context.Context, orderID int64, items []AddItemRequest) (int, error)

	// UpdateItemQuantities sets quantities of the given items in the order;
	// ids not present in the order are no-ops. Returns the number updated.
	UpdateItemQuantities(ctx context.Context, orderID int64, items []UpdateItemRequest) (int64, error)

	// DeleteItems removes the listed items from the order only. Returns the
	// number deleted.
	DeleteItems(ctx context.Context, orderID int64, ids []int64) (int64, error)

	// ListByUser returns the user's orders, basket-state only or everything
	// but basket, with nested item detail and total_sum.
	ListByUser(ctx context.Context, userID int64, basket bool) ([]*Order, error)

	// ListBySeller returns non-basket orders containing at least one item
	// sold by the seller owned by sellerUserID.
	ListBySeller(ctx context.Context, sellerUserID int64) ([]*Order, error)

	// Place sets contact and state "new" on the user's order in a single
	// statement; the contact must belong to that user. Returns rows updated;
	// a referential-integrity failure maps to ErrInvalidArguments.
	Place(ctx context.Context, userID, orderID, contactID int64) (int64, error)

	// GetUserEmail looks up the email of a user, for notifications.
	GetUserEmail(ctx context.Context, userID int64) (string, error)
}
