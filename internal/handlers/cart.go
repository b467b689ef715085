package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

type saveCartRequest struct {
	Items []models.CartItem `json:"items" binding:"required"`
}

type addCartItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity" binding:"required"`
}

// emptyCartUpdate creates the cart document only when none exists yet. Every
// field sits under $setOnInsert so a concurrent save is never overwritten.
func emptyCartUpdate(userID primitive.ObjectID, now time.Time) bson.M {
	return bson.M{
		"$setOnInsert": bson.M{
			"userId":    userID,
			"items":     []models.CartItem{},
			"updatedAt": now,
		},
	}
}

func contextUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, ok := value.(primitive.ObjectID)
	return userID, ok
}

// GetCart returns the user's server-held cart, creating an empty document on
// first access so the client always receives an items array.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err == mongo.ErrNoDocuments {
			// two first fetches can race on the unique userId index, so the
			// lazy create is an upsert that only writes when no document exists
			cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
			if _, err := db.Collection("carts").UpdateOne(ctx,
				bson.M{"userId": userID}, emptyCartUpdate(userID, time.Now()), upsert()); err != nil {
				log.Println("[CART] [ERROR] lazy cart create failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching cart"})
				return
			}
			log.Println("[CART] [INFO] created empty cart for:", userID.Hex())
		} else if err != nil {
			log.Println("[CART] [ERROR] cart fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching cart"})
			return
		}

		if cart.Items == nil {
			cart.Items = []models.CartItem{}
		}

		c.JSON(http.StatusOK, gin.H{"items": cart.Items})
	}
}

// SaveCart overwrites the whole items array. Concurrent saves from two tabs
// are last write wins; the document carries no version.
func SaveCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		var req saveCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": bindingErrorMessage(err, "items are required")})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		items := req.Items
		if items == nil {
			items = []models.CartItem{}
		}

		_, err := db.Collection("carts").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{
				"$set":         bson.M{"items": items, "updatedAt": time.Now()},
				"$setOnInsert": bson.M{"userId": userID},
			},
			upsert(),
		)
		if err != nil {
			log.Println("[CART] [ERROR] cart save failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while saving cart"})
			return
		}

		log.Printf("[CART] [INFO] saved %d items (%d pieces) for %s",
			len(items), cartTotalQuantity(items), userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "Cart saved successfully", "items": items})
	}
}

// ClearCart empties the items array but keeps the document, so the next login
// still finds a cart to fetch.
func ClearCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("carts").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
		)
		if err != nil {
			log.Println("[CART] [ERROR] cart clear failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while clearing cart"})
			return
		}

		if res.MatchedCount == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "Cart already empty"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
	}
}

// AddCartItem merges a single line into the server cart by (productId, size).
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": bindingErrorMessage(err, "productId and quantity are required")})
			return
		}
		if req.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be greater than zero"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart)
		if err != nil && err != mongo.ErrNoDocuments {
			log.Println("[CART] [ERROR] cart fetch failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while adding item to cart"})
			return
		}

		items := mergeCartItem(cart.Items, models.CartItem{
			ProductID: strings.TrimSpace(req.ProductID),
			Name:      strings.TrimSpace(req.Name),
			Price:     req.Price,
			Image:     req.Image,
			Size:      req.Size,
			Quantity:  req.Quantity,
		})

		_, err = db.Collection("carts").UpdateOne(ctx,
			bson.M{"userId": userID},
			bson.M{
				"$set":         bson.M{"items": items, "updatedAt": time.Now()},
				"$setOnInsert": bson.M{"userId": userID},
			},
			upsert(),
		)
		if err != nil {
			log.Println("[CART] [ERROR] cart item add failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while adding item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "items": items})
	}
}

// RemoveCartItem drops every line with the given productId, all sizes.
func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}

		productID := strings.TrimSpace(c.Param("productId"))
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var cart models.Cart
		if err := db.Collection("carts").FindOne(ctx, bson.M{"userId": userID}).Decode(&cart); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart not found"})
			return
		}

		items := removeCartLines(cart.Items, productID)

		_, err := db.Collection("carts").UpdateByID(ctx, cart.ID, bson.M{
			"$set": bson.M{"items": items, "updatedAt": time.Now()},
		})
		if err != nil {
			log.Println("[CART] [ERROR] cart item remove failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while removing item from cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "items": items})
	}
}
