package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one line in a user's cart. Line identity is (productId, size);
// productId stays a plain string because catalog ids cross four collections.
type CartItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Cart is the single server-held cart document per user. Saves overwrite the
// whole items array; there are no partial patches.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
