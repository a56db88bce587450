package constant

type OrderStatus string

const (
	OrderStatusPendingPayment    OrderStatus = "pending_payment"
	OrderStatusPaid              OrderStatus = "paid"
	OrderStatusProcessing        OrderStatus = "processing"
	OrderStatusShipped           OrderStatus = "shipped"
	OrderStatusDelivered         OrderStatus = "delivered"
	OrderStatusAwaitingExchange  OrderStatus = "awaiting_exchange"
	OrderStatusExchangeCompleted OrderStatus = "exchange_completed"
	OrderStatusExchangeRejected  OrderStatus = "exchange_rejected"
	OrderStatusCancelled         OrderStatus = "cancelled"
)

// OrderTransitions is the single source of truth for the order lifecycle.
// A status absent from the map, or a target absent from its list, is an
// invalid transition.
var OrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing:     {OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusDelivered, OrderStatusShipped},
	OrderStatusShipped:        {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// CanTransitionOrder reports whether from -> to is in the transition table.
func CanTransitionOrder(from, to OrderStatus) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentConfirmableStatuses are the statuses from which the seller may
// confirm payment.
var PaymentConfirmableStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusProcessing,
}

// CancellableStatuses are the statuses from which buyer or seller may cancel.
var CancellableStatuses = []OrderStatus{
	OrderStatusPendingPayment,
	OrderStatusPaid,
	OrderStatusProcessing,
}

// IsValidOrderStatus reports whether status is one of the known order
// statuses, including the exchange statuses the returns workflow sets
// directly.
func IsValidOrderStatus(status OrderStatus) bool {
	switch status {
	case OrderStatusPendingPayment, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusAwaitingExchange,
		OrderStatusExchangeCompleted, OrderStatusExchangeRejected, OrderStatusCancelled:
		return true
	}
	return false
}

func OrderStatusIn(status OrderStatus, set []OrderStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
