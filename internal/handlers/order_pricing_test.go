package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestOrderSubtotalSumsLineTotals(t *testing.T) {
	items := []models.OrderItem{
		{Price: 250, Quantity: 2},
		{Price: 99.5, Quantity: 1},
	}

	if got := orderSubtotal(items); got != 599.5 {
		t.Fatalf("expected subtotal 599.5, got %v", got)
	}
}

func TestShippingForFreeAboveThreshold(t *testing.T) {
	if got := shippingFor(1000); got != 0 {
		t.Fatalf("expected free shipping at 1000, got %v", got)
	}
	if got := shippingFor(1200); got != 0 {
		t.Fatalf("expected free shipping above 1000, got %v", got)
	}
}

func TestShippingForFlatRateBelowThreshold(t *testing.T) {
	if got := shippingFor(999.99); got != 50 {
		t.Fatalf("expected flat rate 50 below 1000, got %v", got)
	}
	if got := shippingFor(0); got != 50 {
		t.Fatalf("expected flat rate 50 for empty subtotal, got %v", got)
	}
}

func TestOrderTotalFormula(t *testing.T) {
	if got := orderTotal(800, 100, 50); got != 750 {
		t.Fatalf("expected total 750, got %v", got)
	}
	if got := orderTotal(1200, 0, 0); got != 1200 {
		t.Fatalf("expected total 1200, got %v", got)
	}
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled,
	} {
		if !validOrderStatus(status) {
			t.Fatalf("expected %q to be a valid order status", status)
		}
	}
	for _, status := range []string{"", "unknown", "Pending", "returned"} {
		if validOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, status := range []string{
		models.PaymentPending, models.PaymentCompleted,
		models.PaymentFailed, models.PaymentRefunded,
	} {
		if !validPaymentStatus(status) {
			t.Fatalf("expected %q to be a valid payment status", status)
		}
	}
	if validPaymentStatus("paid") {
		t.Fatal("expected \"paid\" to be rejected")
	}
}
