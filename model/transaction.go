package model

import (
	"time"

	"github.com/stocktech/marketplace/constant"
)

// Transaction rows always come in pairs per order line: a purchase row owned
// by the buyer's account and a sale row owned by the seller's account.
type Transaction struct {
	ID               uint64                     `db:"id" json:"id"`
	AccountID        string                     `db:"account_id" json:"account_id"`
	OwnerCPF         string                     `db:"owner_cpf" json:"owner_cpf"`
	BuyerID          string                     `db:"buyer_id" json:"buyer_id"`
	SellerID         string                     `db:"seller_id" json:"seller_id"`
	TransactionCode  string                     `db:"transaction_code" json:"transaction_code"`
	Type             constant.TransactionType   `db:"type" json:"type"`
	ProductID        uint64                     `db:"product_id" json:"product_id"`
	ProductName      string                     `db:"product_name" json:"product_name"`
	Counterparty     string                     `db:"counterparty" json:"counterparty"`
	CounterpartyRole constant.CounterpartyRole  `db:"counterparty_role" json:"counterparty_role"`
	Amount           float64                    `db:"amount" json:"amount"`
	Quantity         int                        `db:"quantity" json:"quantity"`
	Status           constant.TransactionStatus `db:"status" json:"status"`
	CreatedAt        time.Time                  `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time                 `db:"updated_at" json:"updated_at,omitempty"`
}

// TransactionPairRequest carries everything needed to write the two sides of
// one order line.
type TransactionPairRequest struct {
	BuyerAccountID  string
	BuyerOwnerCPF   string
	SellerAccountID string
	SellerOwnerCPF  string
	BuyerID         string
	SellerID        string
	BuyerName       string
	SellerName      string
	ProductID       uint64
	ProductName     string
	Amount          float64
	Quantity        int
	Status          constant.TransactionStatus
}
