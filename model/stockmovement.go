package model

import (
	"time"

	"github.com/stocktech/marketplace/constant"
)

// StockMovement is one append-only ledger row. The sum of Delta between two
// observation points must equal the net change of the product's quantity in
// that interval.
type StockMovement struct {
	ID               uint64                     `db:"id" json:"id"`
	AccountID        string                     `db:"account_id" json:"account_id"`
	OwnerCPF         string                     `db:"owner_cpf" json:"owner_cpf"`
	UserID           string                     `db:"user_id" json:"user_id"`
	ProductID        uint64                     `db:"product_id" json:"product_id"`
	ProductCode      string                     `db:"product_code" json:"product_code"`
	ProductName      string                     `db:"product_name" json:"product_name"`
	Type             constant.StockMovementType `db:"type" json:"type"`
	PreviousQuantity int                        `db:"previous_quantity" json:"previous_quantity"`
	NewQuantity      int                        `db:"new_quantity" json:"new_quantity"`
	Delta            int                        `db:"delta" json:"delta"`
	Notes            string                     `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time                  `db:"created_at" json:"created_at"`
}
