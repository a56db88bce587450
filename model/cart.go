package model

import "time"

// CartItem is a soft, advisory reservation: it narrows the availability other
// buyers see but never mutates the product quantity. Expired rows are purged
// by the periodic sweep.
type CartItem struct {
	ID            uint64     `db:"id" json:"id"`
	AccountID     string     `db:"account_id" json:"account_id"`
	UserID        string     `db:"user_id" json:"user_id"`
	ProductID     uint64     `db:"product_id" json:"product_id"`
	Quantity      int        `db:"quantity" json:"quantity"`
	ReservedAt    time.Time  `db:"reserved_at" json:"reserved_at"`
	ReservedUntil time.Time  `db:"reserved_until" json:"reserved_until"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type AddCartItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateCartQuantityRequest struct {
	CartID   uint64 `json:"cart_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}
