package contact

import "context"

// Repository defines data access for contacts. All reads and writes are
// scoped to the owning user; a contact id of another user behaves as absent.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	ListByUser(ctx context.Context, userID int64) ([]*Contact, error)
	GetForUser(ctx context.Context, id, userID int64) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
	DeleteForUser(ctx context.Context, ids []int64, userID int64) (int64, error)
}
