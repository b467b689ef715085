package handlers

import "backend/internal/models"

// mergeCartItem folds one line into a cart. Line identity is (productId, size):
// an existing line gets the quantity added, a new key is appended. Name, price
// and image of an existing line are left as first written.
func mergeCartItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID && items[i].Size == item.Size {
			merged := make([]models.CartItem, len(items))
			copy(merged, items)
			merged[i].Quantity += item.Quantity
			return merged
		}
	}
	return append(append([]models.CartItem{}, items...), item)
}

// removeCartLines drops every line for a product, regardless of size.
func removeCartLines(items []models.CartItem, productID string) []models.CartItem {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}

// cartTotalQuantity sums line quantities across the cart.
func cartTotalQuantity(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
