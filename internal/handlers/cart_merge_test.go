package handlers

import (
	"testing"

	"backend/internal/models"
)

func TestMergeCartItemAddsQuantityForSameProductAndSize(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1, Price: 250},
	}

	merged := mergeCartItem(items, models.CartItem{ProductID: "p1", Size: "M", Quantity: 1})
	if len(merged) != 1 {
		t.Fatalf("expected one merged line, got %d", len(merged))
	}
	if merged[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", merged[0].Quantity)
	}
	if items[0].Quantity != 1 {
		t.Fatal("expected original slice to stay unmodified")
	}
}

func TestMergeCartItemDifferentSizeIsNewLine(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1},
	}

	merged := mergeCartItem(items, models.CartItem{ProductID: "p1", Size: "L", Quantity: 3})
	if len(merged) != 2 {
		t.Fatalf("expected two lines, got %d", len(merged))
	}
	if merged[1].Size != "L" || merged[1].Quantity != 3 {
		t.Fatalf("expected new L line with quantity 3, got %+v", merged[1])
	}
}

func TestMergeCartItemKeepsFirstWrittenPrice(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1, Price: 250, Name: "Linen Shirt"},
	}

	merged := mergeCartItem(items, models.CartItem{ProductID: "p1", Size: "M", Quantity: 1, Price: 199})
	if merged[0].Price != 250 || merged[0].Name != "Linen Shirt" {
		t.Fatalf("expected first written line data to survive, got %+v", merged[0])
	}
}

func TestRemoveCartLinesDropsEverySize(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1},
		{ProductID: "p1", Size: "L", Quantity: 2},
		{ProductID: "p2", Size: "M", Quantity: 1},
	}

	kept := removeCartLines(items, "p1")
	if len(kept) != 1 {
		t.Fatalf("expected only one line after removal, got %d", len(kept))
	}
	if kept[0].ProductID != "p2" {
		t.Fatalf("expected p2 to survive, got %+v", kept[0])
	}
}

func TestRemoveCartLinesUnknownProductKeepsCart(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 1},
	}

	kept := removeCartLines(items, "missing")
	if len(kept) != 1 {
		t.Fatalf("expected cart unchanged, got %d lines", len(kept))
	}
}

func TestCartTotalQuantity(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Size: "M", Quantity: 2},
		{ProductID: "p2", Size: "S", Quantity: 3},
	}

	if got := cartTotalQuantity(items); got != 5 {
		t.Fatalf("expected total quantity 5, got %d", got)
	}
}
