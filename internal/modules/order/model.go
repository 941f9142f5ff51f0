package order

import (
	"errors"
	"time"
)

// Order lifecycle states.
const (
	StateBasket    = "basket"
	StateNew       = "new"
	StateConfirmed = "confirmed"
	StateAssembled = "assembled"
	StateSent      = "sent"
	StateDelivered = "delivered"
	StateCanceled  = "canceled"
)

var (
	ErrInvalidFormat    = errors.New("invalid request format")
	ErrMissingArguments = errors.New("necessary arguments are not specified")
	ErrInvalidArguments = errors.New("the arguments are specified incorrectly")
	ErrDuplicateItem    = errors.New("product is already in the basket")
	ErrProductNotFound  = errors.New("product info not found")
)

// Order is a basket or a placed order. TotalSum is derived at read time from
// the items' quantity times current listing price; it is never stored.
type Order struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ContactID *int64    `json:"contact,omitempty"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	Items     []*Item   `json:"items"`
	TotalSum  int64     `json:"total_sum"`
}

// Item is one line of an order, referencing a seller listing.
type Item struct {
	ID            int64  `json:"id"`
	OrderID       int64  `json:"order_id"`
	ProductInfoID int64  `json:"product_info"`
	SellerID      int64  `json:"seller_id"`
	Quantity      int64  `json:"quantity"`
	Model         string `json:"model,omitempty"`
	Product       string `json:"product,omitempty"`
	Category      string `json:"category,omitempty"`
	Price         int64  `json:"price,omitempty"`
}

// AddItemRequest is one entry of the basket add payload.
type AddItemRequest struct {
	ProductInfo int64 `json:"product_info"`
	Quantity    int64 `json:"quantity"`
}

// UpdateItemRequest is one entry of the basket update payload. Both fields
// must be JSON integers.
type UpdateItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int64 `json:"quantity"`
}
