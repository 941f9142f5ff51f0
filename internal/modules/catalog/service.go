package catalog

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/retailhub/orders-backend/pkg/logger"
	"github.com/retailhub/orders-backend/pkg/metrics"
)

// Service defines catalog business logic.
type Service interface {
	// ImportFromURL fetches, parses and applies the catalog document at
	// rawURL for the seller owned by userID. The whole import is
	// all-or-nothing; importing the same document twice leaves the same
	// stock.
	ImportFromURL(ctx context.Context, userID int64, rawURL string) error

	// ListCategories returns all known categories.
	ListCategories(ctx context.Context) ([]*Category, error)

	// ListOffers searches listings of sellers accepting orders.
	ListOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error)
}

type service struct {
	repo    Repository
	fetcher Fetcher
}

// NewService creates a new catalog service.
func NewService(repo Repository, fetcher Fetcher) Service {
	return &service{repo: repo, fetcher: fetcher}
}

func (s *service) ImportFromURL(ctx context.Context, userID int64, rawURL string) error {
	if err := validateURL(rawURL); err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("invalid_url").Inc()
		return err
	}

	data, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("fetch_error").Inc()
		return err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("parse_error").Inc()
		return err
	}

	if err := s.repo.ReplaceSellerCatalog(ctx, userID, rawURL, doc); err != nil {
		metrics.CatalogImportsTotal.WithLabelValues("store_error").Inc()
		return fmt.Errorf("apply catalog: %w", err)
	}

	metrics.CatalogImportsTotal.WithLabelValues("ok").Inc()
	logger.Get().Info("seller catalog imported",
		zap.Int64("user_id", userID),
		zap.String("seller", doc.Seller),
		zap.Int("categories", len(doc.Categories)),
		zap.Int("goods", len(doc.Goods)))
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error) {
	return s.repo.ListOffers(ctx, filter)
}

func validateURL(rawURL string) error {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}
