package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product categories. A product's collection membership is its category;
// there is no single products collection.
const (
	CategorySummer      = "summer"
	CategoryWinter      = "winter"
	CategoryRoyal       = "royal"
	CategoryAccessories = "accessories"
)

// ProductCategories lists every catalog collection, in fan-out order.
var ProductCategories = []string{
	CategorySummer,
	CategoryWinter,
	CategoryRoyal,
	CategoryAccessories,
}

// Product is the common shape shared by the four category collections.
// Facet fields are populated only for the categories that define them.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Price    float64            `bson:"price" json:"price"`
	OldPrice float64            `bson:"oldPrice,omitempty" json:"oldPrice,omitempty"`
	Image    string             `bson:"image" json:"image"`
	Category string             `bson:"category" json:"category"`
	Gender   string             `bson:"gender,omitempty" json:"gender,omitempty"`

	SummerType      FacetList `bson:"summerType,omitempty" json:"summerType,omitempty"`
	SummerStyle     FacetList `bson:"summerStyle,omitempty" json:"summerStyle,omitempty"`
	WinterType      FacetList `bson:"winterType,omitempty" json:"winterType,omitempty"`
	WinterStyle     FacetList `bson:"winterStyle,omitempty" json:"winterStyle,omitempty"`
	RoyalType       FacetList `bson:"royalType,omitempty" json:"royalType,omitempty"`
	AccessoriesType FacetList `bson:"accessoriesType,omitempty" json:"accessoriesType,omitempty"`
}

// FacetFields maps each category to its filterable facet field names.
var FacetFields = map[string][]string{
	CategorySummer:      {"summerType", "summerStyle"},
	CategoryWinter:      {"winterType", "winterStyle"},
	CategoryRoyal:       {"royalType"},
	CategoryAccessories: {"accessoriesType"},
}
