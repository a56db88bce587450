package model

import (
	"time"

	"github.com/stocktech/marketplace/constant"
)

type Product struct {
	ID                uint64                  `db:"id" json:"id"`
	AccountID         string                  `db:"account_id" json:"account_id"`
	OwnerCPF          string                  `db:"owner_cpf" json:"owner_cpf"`
	Code              string                  `db:"code" json:"code"`
	Name              string                  `db:"name" json:"name"`
	Price             float64                 `db:"price" json:"price"`
	Quantity          int                     `db:"quantity" json:"quantity"`
	MinQuantity       int                     `db:"min_quantity" json:"min_quantity"`
	DefectiveQuantity int                     `db:"defective_quantity" json:"defective_quantity"`
	WarrantyPeriod    constant.WarrantyPeriod `db:"warranty_period" json:"warranty_period"`
	CreatedAt         time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt         *time.Time              `db:"updated_at" json:"updated_at,omitempty"`
}

type RestockRequest struct {
	ProductID   uint64 `json:"product_id" validate:"required"`
	NewQuantity int    `json:"new_quantity" validate:"gte=0"`
	Notes       string `json:"notes"`
}

type RestockResponse struct {
	Product  *Product       `json:"product"`
	Movement *StockMovement `json:"movement,omitempty"`
	Message  string         `json:"message"`
}
