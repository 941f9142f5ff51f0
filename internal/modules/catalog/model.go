package catalog

import "errors"

var (
	ErrInvalidURL    = errors.New("invalid catalog url")
	ErrSellerUnknown = errors.New("seller record not found")
)

// Category is a product grouping shared across sellers. Ids come from the
// catalog documents, not from a local sequence.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Offer is a seller's priced listing of a product as returned by the
// product search endpoint, flattened across product, category and seller.
type Offer struct {
	ID         int64            `json:"id"`
	Model      string           `json:"model"`
	Product    string           `json:"product"`
	Category   string           `json:"category"`
	Seller     string           `json:"seller"`
	SellerID   int64            `json:"seller_id"`
	Quantity   int64            `json:"quantity"`
	Price      int64            `json:"price"`
	PriceRRC   int64            `json:"price_rrc"`
	Article    int64            `json:"article"`
	Parameters []OfferParameter `json:"parameters"`
}

// OfferParameter is one key-value specification entry of an offer.
type OfferParameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OfferFilter narrows a product search. Zero values mean no filter.
type OfferFilter struct {
	SellerID   int64
	CategoryID int64
}
