package seller

import (
	"context"
	"strconv"
)

// Service defines seller business logic.
type Service interface {
	// GetOwn returns the caller's seller record.
	GetOwn(ctx context.Context, userID int64) (*Seller, error)

	// ListAccepting returns all sellers currently accepting orders.
	ListAccepting(ctx context.Context) ([]*Seller, error)

	// SetState parses a boolean-ish string and toggles order acceptance for
	// the caller's seller.
	SetState(ctx context.Context, userID int64, state string) error
}

type service struct{ repo Repository }

// NewService creates a new seller service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetOwn(ctx context.Context, userID int64) (*Seller, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) ListAccepting(ctx context.Context) ([]*Seller, error) {
	return s.repo.ListAccepting(ctx)
}

func (s *service) SetState(ctx context.Context, userID int64, state string) error {
	accepting, err := strconv.ParseBool(state)
	if err != nil {
		return err
	}
	updated, err := s.repo.SetAcceptingOrders(ctx, userID, accepting)
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}
