package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/retailhub/orders-backend/internal/modules/notify"
	"github.com/retailhub/orders-backend/pkg/logger"
	"github.com/retailhub/orders-backend/pkg/metrics"
)

// Service defines basket and order business logic.
type Service interface {
	// ListBasket returns the caller's basket orders with items and totals.
	ListBasket(ctx context.Context, userID int64) ([]*Order, error)

	// AddToBasket puts items into the caller's singleton basket, creating
	// the basket on demand. The whole batch is rejected on a duplicate or
	// unknown listing. Returns the number of items created.
	AddToBasket(ctx context.Context, userID int64, items []AddItemRequest) (int, error)

	// UpdateBasket sets quantities of the caller's basket items; unknown ids
	// are no-ops. Returns the number updated.
	UpdateBasket(ctx context.Context, userID int64, items []UpdateItemRequest) (int64, error)

	// DeleteFromBasket removes the basket items listed in a comma-separated
	// id string; non-numeric ids are ignored and only the caller's own
	// basket is touched. Returns the number deleted.
	DeleteFromBasket(ctx context.Context, userID int64, csv string) (int64, error)

	// Place attaches a contact to the caller's order and moves it to "new",
	// notifying the buyer when exactly one row changed.
	Place(ctx context.Context, userID, orderID, contactID int64) error

	// ListOrders returns the caller's non-basket orders.
	ListOrders(ctx context.Context, userID int64) ([]*Order, error)

	// ListSellerOrders returns non-basket orders containing items sold by
	// the caller's seller.
	ListSellerOrders(ctx context.Context, sellerUserID int64) ([]*Order, error)
}

type service struct {
	repo     Repository
	notifier notify.Notifier
}

// NewService creates a new order service.
func NewService(repo Repository, notifier notify.Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) ListBasket(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID, true)
}

func (s *service) AddToBasket(ctx context.Context, userID int64, items []AddItemRequest) (int, error) {
	if len(items) == 0 {
		return 0, ErrMissingArguments
	}
	for _, item := range items {
		if item.ProductInfo <= 0 || item.Quantity <= 0 {
			return 0, fmt.Errorf("%w: product_info and quantity must be positive", ErrInvalidFormat)
		}
	}

	basket, err := s.repo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.AddItems(ctx, basket.ID, items)
}

func (s *service) UpdateBasket(ctx context.Context, userID int64, items []UpdateItemRequest) (int64, error) {
	if len(items) == 0 {
		return 0, ErrMissingArguments
	}
	for _, item := range items {
		if item.ID <= 0 || item.Quantity <= 0 {
			return 0, fmt.Errorf("%w: id and quantity must be positive integers", ErrInvalidFormat)
		}
	}

	basket, err := s.repo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateItemQuantities(ctx, basket.ID, items)
}

func (s *service) DeleteFromBasket(ctx context.Context, userID int64, csv string) (int64, error) {
	ids := parseIDList(csv)
	if len(ids) == 0 {
		return 0, ErrMissingArguments
	}

	basket, err := s.repo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteItems(ctx, basket.ID, ids)
}

func (s *service) Place(ctx context.Context, userID, orderID, contactID int64) error {
	if orderID <= 0 || contactID <= 0 {
		return ErrMissingArguments
	}

	updated, err := s.repo.Place(ctx, userID, orderID, contactID)
	if err != nil {
		return err
	}
	if updated != 1 {
		return ErrInvalidArguments
	}

	metrics.OrdersPlacedTotal.Inc()
	if email, err := s.repo.GetUserEmail(ctx, userID); err == nil {
		if err := s.notifier.OrderPlaced(email); err != nil {
			logger.Get().Warn("failed to send order notification",
				zap.Int64("order_id", orderID), zap.Error(err))
		}
	}
	return nil
}

func (s *service) ListOrders(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID, false)
}

func (s *service) ListSellerOrders(ctx context.Context, sellerUserID int64) ([]*Order, error) {
	return s.repo.ListBySeller(ctx, sellerUserID)
}

// parseIDList splits a comma-separated id string, dropping anything that is
// not a positive integer.
func parseIDList(csv string) []int64 {
	var ids []int64
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
