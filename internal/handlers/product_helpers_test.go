package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"backend/internal/models"
)

func TestCollectionForCategoryKnownCategories(t *testing.T) {
	for _, category := range []string{"summer", "winter", "royal", "accessories"} {
		name, ok := collectionForCategory(category)
		if !ok || name != category {
			t.Fatalf("expected collection %q, got %q ok=%v", category, name, ok)
		}
	}
}

func TestCollectionForCategoryNormalizesInput(t *testing.T) {
	name, ok := collectionForCategory("  Summer ")
	if !ok || name != models.CategorySummer {
		t.Fatalf("expected normalized summer, got %q ok=%v", name, ok)
	}
}

func TestCollectionForCategoryRejectsUnknown(t *testing.T) {
	if _, ok := collectionForCategory("spring"); ok {
		t.Fatal("expected unknown category to be rejected")
	}
	if _, ok := collectionForCategory(""); ok {
		t.Fatal("expected empty category to be rejected")
	}
}

func TestProductFilterGenderAndFacets(t *testing.T) {
	filter := productFilter(models.CategorySummer, map[string][]string{
		"gender":     {"Men"},
		"summerType": {"shirt"},
	})

	if filter["gender"] != "men" {
		t.Fatalf("expected lowercased gender filter, got %v", filter["gender"])
	}

	facet, ok := filter["summerType"].(bson.M)
	if !ok {
		t.Fatalf("expected $in facet filter, got %v", filter["summerType"])
	}
	values, ok := facet["$in"].([]string)
	if !ok || len(values) != 1 || values[0] != "shirt" {
		t.Fatalf("expected $in [shirt], got %v", facet["$in"])
	}
}

func TestProductFilterIgnoresForeignFacetFields(t *testing.T) {
	filter := productFilter(models.CategorySummer, map[string][]string{
		"winterType": {"coat"},
	})

	if _, ok := filter["winterType"]; ok {
		t.Fatal("expected winter facet to be ignored on summer listing")
	}
}

func TestNormalizeProductDocumentStringPrice(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"title":    "Linen Shirt",
		"price":    "249.90",
		"oldPrice": "300",
		"category": "summer",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 249.90 {
		t.Fatalf("expected price 249.90, got %v", product.Price)
	}
	if product.OldPrice != 300 {
		t.Fatalf("expected oldPrice 300, got %v", product.OldPrice)
	}
}

func TestNormalizeProductDocumentIntPrice(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"title": "Wool Coat",
		"price": int32(1200),
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 1200 {
		t.Fatalf("expected price 1200, got %v", product.Price)
	}
}

func TestNormalizeProductDocumentBadStringPriceBecomesZero(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"title": "Broken",
		"price": "not-a-number",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.Price != 0 {
		t.Fatalf("expected unparseable price to become 0, got %v", product.Price)
	}
}

func TestProductJSONJoinsFacetArrays(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"title":      "Linen Shirt",
		"price":      249.90,
		"category":   "summer",
		"summerType": []string{"shirt", "casual"},
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}

	body, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	if !strings.Contains(string(body), `"summerType":"shirt, casual"`) {
		t.Fatalf("expected comma-joined facet string in json, got %s", body)
	}
}
