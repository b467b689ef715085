package handlers

import (
	"context"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// collectionForCategory resolves which catalog collection a category string
// names. Collection membership is the category; cross-category reads fan out.
func collectionForCategory(category string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case models.CategorySummer:
		return models.CategorySummer, true
	case models.CategoryWinter:
		return models.CategoryWinter, true
	case models.CategoryRoyal:
		return models.CategoryRoyal, true
	case models.CategoryAccessories:
		return models.CategoryAccessories, true
	default:
		return "", false
	}
}

// productFilter builds the equality filter for a category listing: gender plus
// the category's facet fields. Facet values match against the stored arrays.
func productFilter(category string, query map[string][]string) bson.M {
	filter := bson.M{}

	if values, ok := query["gender"]; ok && len(values) > 0 {
		if gender := strings.TrimSpace(values[0]); gender != "" {
			filter["gender"] = strings.ToLower(gender)
		}
	}

	for _, field := range models.FacetFields[category] {
		values, ok := query[field]
		if !ok || len(values) == 0 {
			continue
		}
		if value := strings.TrimSpace(values[0]); value != "" {
			filter[field] = bson.M{"$in": []string{value}}
		}
	}

	return filter
}

// normalizeProductDocument tolerates legacy documents where price fields were
// stored as strings (the admin form wrote form values verbatim for a while).
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	for _, key := range []string{"price", "oldPrice"} {
		value, ok := raw[key]
		if !ok {
			continue
		}
		switch typed := value.(type) {
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
			if err != nil {
				parsed = 0
			}
			raw[key] = parsed
		case int32:
			raw[key] = float64(typed)
		case int64:
			raw[key] = float64(typed)
		case float64:
			// already numeric
		default:
			raw[key] = float64(0)
		}
	}

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}

	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
