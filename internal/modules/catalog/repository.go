package catalog

import "context"

// Repository defines data access for the catalog.
type Repository interface {
	// ReplaceSellerCatalog applies a catalog document for the seller owned
	// by userID, atomically: the seller is upserted, categories are upserted
	// and linked to it, and the seller's previous listings are deleted and
	// rebuilt from the document. A failure at any step rolls everything back.
	ReplaceSellerCatalog(ctx context.Context, userID int64, sourceURL string, doc *Document) error

	// ListCategories returns all known categories.
	ListCategories(ctx context.Context) ([]*Category, error)

	// ListOffers returns listings of sellers accepting orders, with product,
	// category and parameters attached, one row per listing.
	ListOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error)
}
