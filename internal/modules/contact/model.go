package contact

import "errors"

var ErrNotFound = errors.New("contact not found")

// Contact is a shipping address with a phone number, owned by a user.
type Contact struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
