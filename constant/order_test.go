package constant_test

import (
	"testing"

	"github.com/stocktech/marketplace/constant"
)

func TestCanTransitionOrder(t *testing.T) {
	tests := []struct {
		name string
		from constant.OrderStatus
		to   constant.OrderStatus
		want bool
	}{
		{"pending_payment to processing", constant.OrderStatusPendingPayment, constant.OrderStatusProcessing, true},
		{"pending_payment to cancelled", constant.OrderStatusPendingPayment, constant.OrderStatusCancelled, true},
		{"pending_payment cannot skip to delivered", constant.OrderStatusPendingPayment, constant.OrderStatusDelivered, false},
		{"processing to shipped", constant.OrderStatusProcessing, constant.OrderStatusShipped, true},
		{"processing to paid", constant.OrderStatusProcessing, constant.OrderStatusPaid, true},
		{"paid to delivered", constant.OrderStatusPaid, constant.OrderStatusDelivered, true},
		{"paid cannot be cancelled through transition", constant.OrderStatusPaid, constant.OrderStatusCancelled, false},
		{"shipped to delivered", constant.OrderStatusShipped, constant.OrderStatusDelivered, true},
		{"shipped cannot go back", constant.OrderStatusShipped, constant.OrderStatusProcessing, false},
		{"delivered is terminal", constant.OrderStatusDelivered, constant.OrderStatusProcessing, false},
		{"cancelled is terminal", constant.OrderStatusCancelled, constant.OrderStatusPendingPayment, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := constant.CanTransitionOrder(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanTransitionOrder(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestOrderStatusIn(t *testing.T) {
	if !constant.OrderStatusIn(constant.OrderStatusPendingPayment, constant.PaymentConfirmableStatuses) {
		t.Fatal("pending_payment should be payment confirmable")
	}
	if constant.OrderStatusIn(constant.OrderStatusPaid, constant.PaymentConfirmableStatuses) {
		t.Fatal("paid should not be payment confirmable")
	}
	if !constant.OrderStatusIn(constant.OrderStatusPaid, constant.CancellableStatuses) {
		t.Fatal("paid should be cancellable")
	}
	if constant.OrderStatusIn(constant.OrderStatusShipped, constant.CancellableStatuses) {
		t.Fatal("shipped should not be cancellable")
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	valid := []constant.OrderStatus{
		constant.OrderStatusPendingPayment,
		constant.OrderStatusPaid,
		constant.OrderStatusProcessing,
		constant.OrderStatusShipped,
		constant.OrderStatusDelivered,
		constant.OrderStatusAwaitingExchange,
		constant.OrderStatusExchangeCompleted,
		constant.OrderStatusExchangeRejected,
		constant.OrderStatusCancelled,
	}
	for _, status := range valid {
		if !constant.IsValidOrderStatus(status) {
			t.Fatalf("IsValidOrderStatus(%s) = false, want true", status)
		}
	}
	if constant.IsValidOrderStatus("teleported") {
		t.Fatal(`IsValidOrderStatus("teleported") = true, want false`)
	}
}
