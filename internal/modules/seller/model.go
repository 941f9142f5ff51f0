package seller

import "errors"

var ErrNotFound = errors.New("seller not found")

// Seller is a supplier owned by a seller-typed user. AcceptingOrders gates
// whether its listings are visible and orderable.
type Seller struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"user_id"`
	Name            string `json:"name"`
	AcceptingOrders bool   `json:"accepting_orders"`
	CatalogURL      string `json:"catalog_url,omitempty"`
}
