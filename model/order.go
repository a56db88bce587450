package model

import (
	"time"

	"github.com/stocktech/marketplace/constant"
)

type Order struct {
	ID                 uint64               `db:"id" json:"id"`
	AccountID          string               `db:"account_id" json:"account_id"`
	OwnerCPF           string               `db:"owner_cpf" json:"owner_cpf"`
	BuyerAccountID     string               `db:"buyer_account_id" json:"buyer_account_id"`
	SellerAccountID    string               `db:"seller_account_id" json:"seller_account_id"`
	BuyerID            string               `db:"buyer_id" json:"buyer_id"`
	SellerID           string               `db:"seller_id" json:"seller_id"`
	OrderCode          string               `db:"order_code" json:"order_code"`
	ParentOrderCode    string               `db:"parent_order_code" json:"parent_order_code"`
	Status             constant.OrderStatus `db:"status" json:"status"`
	Subtotal           float64              `db:"subtotal" json:"subtotal"`
	Freight            float64              `db:"freight" json:"freight"`
	Total              float64              `db:"total" json:"total"`
	AddressID          uint64               `db:"address_id" json:"address_id"`
	PaymentNotes       string               `db:"payment_notes" json:"payment_notes,omitempty"`
	PaymentConfirmedAt *time.Time           `db:"payment_confirmed_at" json:"payment_confirmed_at,omitempty"`
	PaymentConfirmedBy string               `db:"payment_confirmed_by" json:"payment_confirmed_by,omitempty"`
	TrackingCode       string               `db:"tracking_code" json:"tracking_code,omitempty"`
	TrackingCarrier    string               `db:"tracking_carrier" json:"tracking_carrier,omitempty"`
	Notes              string               `db:"notes" json:"notes,omitempty"`
	CreatedAt          time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt          *time.Time           `db:"updated_at" json:"updated_at,omitempty"`

	Items []OrderItem `db:"-" json:"items,omitempty"`
}

// OrderItem is a snapshot of one cart line at checkout time, stored as a
// child row of its seller order.
type OrderItem struct {
	ID             uint64                  `db:"id" json:"id"`
	OrderID        uint64                  `db:"order_id" json:"order_id"`
	ProductID      uint64                  `db:"product_id" json:"product_id"`
	ProductName    string                  `db:"product_name" json:"product_name"`
	Price          float64                 `db:"price" json:"price"`
	Quantity       int                     `db:"quantity" json:"quantity"`
	SellerID       string                  `db:"seller_id" json:"seller_id"`
	SellerName     string                  `db:"seller_name" json:"seller_name,omitempty"`
	WarrantyPeriod constant.WarrantyPeriod `db:"warranty_period" json:"warranty_period"`
}

type OrderLineRequest struct {
	ProductID   uint64  `json:"product_id" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	SellerID    string  `json:"seller_id" validate:"required"`
	SellerName  string  `json:"seller_name"`
}

type CreateOrderRequest struct {
	Items     []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	AddressID uint64             `json:"address_id" validate:"required"`
	Notes     string             `json:"notes"`
}

type CreateOrderResponse struct {
	Orders     []Order `json:"orders"`
	TotalValue float64 `json:"total_value"`
	Message    string  `json:"message"`
}

type UpdateOrderStatusRequest struct {
	OrderID         uint64               `json:"order_id" validate:"required"`
	Status          constant.OrderStatus `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
	TrackingCode    string               `json:"tracking_code"`
	TrackingCarrier string               `json:"tracking_carrier"`
}

type CancelOrderRequest struct {
	OrderID uint64 `json:"order_id" validate:"required"`
	Reason  string `json:"reason" validate:"required,min=10,max=500"`
}

type ListOrdersRequest struct {
	Status string `json:"status"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

type ListOrdersResponse struct {
	Orders  []Order `json:"orders"`
	Total   int64   `json:"total"`
	HasMore bool    `json:"has_more"`
}

// OrderDetail is the GetByID view. For a buyer whose checkout was split
// across sellers it aggregates the sibling orders into one summed view.
type OrderDetail struct {
	Order
	IsGrouped bool    `json:"is_grouped"`
	SubOrders []Order `json:"sub_orders,omitempty"`
}

type FreightLineRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	SellerID  string `json:"seller_id" validate:"required"`
}

type EstimateFreightRequest struct {
	AddressID uint64               `json:"address_id" validate:"required"`
	Items     []FreightLineRequest `json:"items" validate:"required,min=1,dive"`
}

type FreightQuote struct {
	SellerID   string  `json:"seller_id"`
	SellerZip  string  `json:"seller_zip"`
	BuyerZip   string  `json:"buyer_zip"`
	DistanceKm float64 `json:"distance_km"`
	Freight    float64 `json:"freight"`
}

type EstimateFreightResponse struct {
	TotalFreight float64        `json:"total_freight"`
	Breakdown    []FreightQuote `json:"breakdown"`
}
