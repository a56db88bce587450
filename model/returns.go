package model

import (
	"time"

	"github.com/stocktech/marketplace/constant"
)

type ProductReturn struct {
	ID                   uint64                  `db:"id" json:"id"`
	AccountID            string                  `db:"account_id" json:"account_id"`
	OwnerCPF             string                  `db:"owner_cpf" json:"owner_cpf"`
	BuyerID              string                  `db:"buyer_id" json:"buyer_id"`
	SellerID             string                  `db:"seller_id" json:"seller_id"`
	OrderID              uint64                  `db:"order_id" json:"order_id"`
	ProductID            uint64                  `db:"product_id" json:"product_id"`
	TransactionID        *uint64                 `db:"transaction_id" json:"transaction_id,omitempty"`
	ReturnCode           string                  `db:"return_code" json:"return_code"`
	Reason               string                  `db:"reason" json:"reason"`
	Quantity             int                     `db:"quantity" json:"quantity"`
	Status               constant.ReturnStatus   `db:"status" json:"status"`
	SellerDecision       string                  `db:"seller_decision" json:"seller_decision,omitempty"`
	SellerNotes          string                  `db:"seller_notes" json:"seller_notes,omitempty"`
	ApprovedAt           *time.Time              `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy           string                  `db:"approved_by" json:"approved_by,omitempty"`
	CompletedAt          *time.Time              `db:"completed_at" json:"completed_at,omitempty"`
	RejectedAt           *time.Time              `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectionReason      string                  `db:"rejection_reason" json:"rejection_reason,omitempty"`
	ReplacementSentAt    *time.Time              `db:"replacement_sent_at" json:"replacement_sent_at,omitempty"`
	DefectiveReceivedAt  *time.Time              `db:"defective_received_at" json:"defective_received_at,omitempty"`
	DefectiveValidatedAt *time.Time              `db:"defective_validated_at" json:"defective_validated_at,omitempty"`
	ValidationNotes      string                  `db:"validation_notes" json:"validation_notes,omitempty"`
	ConvertedToSaleAt    *time.Time              `db:"converted_to_sale_at" json:"converted_to_sale_at,omitempty"`
	ReservedQuantity     int                     `db:"reserved_quantity" json:"reserved_quantity"`
	IsWithinWarranty     bool                    `db:"is_within_warranty" json:"is_within_warranty"`
	WarrantyExpiresAt    *time.Time              `db:"warranty_expires_at" json:"warranty_expires_at,omitempty"`
	WarrantyPeriod       constant.WarrantyPeriod `db:"-" json:"warranty_period,omitempty"`
	CreatedAt            time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt            *time.Time              `db:"updated_at" json:"updated_at,omitempty"`
}

type RequestReturnRequest struct {
	OrderID   uint64 `json:"order_id" validate:"required"`
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Reason    string `json:"reason" validate:"required,min=10,max=500"`
}

type RespondReturnRequest struct {
	ReturnID        uint64                  `json:"return_id" validate:"required"`
	Decision        constant.ReturnDecision `json:"decision" validate:"required,oneof=approve_replacement approve_refund reject"`
	Notes           string                  `json:"notes"`
	RejectionReason string                  `json:"rejection_reason"`
}

type ValidateExchangeRequest struct {
	ReturnID        uint64 `json:"return_id" validate:"required"`
	Approved        bool   `json:"approved"`
	ValidationNotes string `json:"validation_notes"`
}

type ResolveExchangeRequest struct {
	ReturnID   uint64                    `json:"return_id" validate:"required"`
	Resolution constant.ReturnResolution `json:"resolution" validate:"required,oneof=pay return_product"`
}

type ReturnActionResponse struct {
	Status constant.ReturnStatus `json:"status"`
}
