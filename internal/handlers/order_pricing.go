package handlers

import "backend/internal/models"

// Canonical checkout pricing rules. The client computes these numbers itself
// and the server persists what it was sent; the helpers exist to make a
// divergence observable in the logs.
const (
	freeShippingThreshold = 1000
	flatShippingRate      = 50
)

func orderSubtotal(items []models.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func shippingFor(subtotal float64) float64 {
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return flatShippingRate
}

func orderTotal(subtotal, discount, shipping float64) float64 {
	return subtotal - discount + shipping
}

func validOrderStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusShipped,
		models.StatusDelivered, models.StatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(status string) bool {
	switch status {
	case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed,
		models.PaymentRefunded:
		return true
	}
	return false
}
