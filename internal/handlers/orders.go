package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/middleware"
	"backend/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
}

type createOrderRequest struct {
	UserID          string                   `json:"userId"`
	Items           []createOrderItemRequest `json:"items" binding:"required,dive"`
	ShippingAddress models.ShippingAddress   `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required"`
	Subtotal        float64                  `json:"subtotal"`
	Discount        *models.Discount         `json:"discount"`
	ShippingCost    float64                  `json:"shippingCost"`
	Total           float64                  `json:"total"`
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type paymentStatusUpdateRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

/* =========================
   CREATE
========================= */

// CreateOrder persists a checkout snapshot. The bearer token is optional; when
// present it wins over the userId in the body. The client-computed amounts are
// stored verbatim: no recomputation gate, no idempotency key, so a double
// submit produces two orders. A server-side recomputation only logs when the
// submitted total disagrees with the canonical rules.
func CreateOrder(db *mongo.Database, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "database unavailable"})
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		userID, err := orderUserID(c.GetHeader("Authorization"), jwtSecret, req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		order, err := buildOrderFromRequest(req, userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		subtotal := orderSubtotal(order.Items)
		expected := orderTotal(subtotal, order.Discount.Amount, shippingFor(subtotal))
		if math.Abs(expected-order.Total) > 0.01 {
			log.Printf("[ORDER] [WARN] submitted total %.2f differs from computed %.2f (items subtotal=%.2f submitted subtotal=%.2f discount=%.2f submitted shipping=%.2f canonical shipping=%.2f)",
				order.Total, expected, subtotal, order.Subtotal, order.Discount.Amount, order.ShippingCost, shippingFor(subtotal))
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").InsertOne(ctx, order)
		if err != nil {
			log.Println("[ORDER] [ERROR] insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			order.ID = id
		}

		log.Println("[ORDER] [INFO] order created:", order.ID.Hex(), "for user:", order.UserID.Hex())
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Order created successfully",
			"order":   orderResponse(ctx, db, order),
		})
	}
}

// orderUserID resolves the order owner: token claim when a bearer header is
// present, body field otherwise (the original client sent it in the body).
func orderUserID(header, secret, bodyUserID string) (primitive.ObjectID, error) {
	if strings.TrimSpace(header) != "" {
		userID, err := middleware.UserIDFromToken(header, secret)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return userID, nil
	}

	userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(bodyUserID))
	if err != nil {
		return primitive.NilObjectID, errors.New("Missing required fields")
	}
	return userID, nil
}

func buildOrderFromRequest(req createOrderRequest, userID primitive.ObjectID) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("at least one item is required")
	}
	if strings.TrimSpace(req.PaymentMethod) == "" {
		return models.Order{}, errors.New("Missing required fields")
	}
	if req.Total == 0 {
		return models.Order{}, errors.New("Missing required fields")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return models.Order{}, errors.New("invalid productId")
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			Name:      strings.TrimSpace(item.Name),
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	discount := models.Discount{}
	if req.Discount != nil {
		discount = *req.Discount
	}

	address := req.ShippingAddress
	if address.Type == "" {
		address.Type = "home"
	}

	now := time.Now()
	return models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: address,
		Subtotal:        req.Subtotal,
		Discount:        discount,
		ShippingCost:    req.ShippingCost,
		Total:           req.Total,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

/* =========================
   READ
========================= */

// orderResponse joins the owner's contact summary into an order payload, the
// way the original populated userId on every order read.
func orderResponse(ctx context.Context, db *mongo.Database, order models.Order) gin.H {
	out := gin.H{
		"_id":             order.ID.Hex(),
		"userId":          order.UserID.Hex(),
		"items":           order.Items,
		"shippingAddress": order.ShippingAddress,
		"subtotal":        order.Subtotal,
		"discount":        order.Discount,
		"shippingCost":    order.ShippingCost,
		"total":           order.Total,
		"paymentMethod":   order.PaymentMethod,
		"status":          order.Status,
		"paymentStatus":   order.PaymentStatus,
		"createdAt":       order.CreatedAt,
		"updatedAt":       order.UpdatedAt,
	}

	var user models.OrderUser
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&user)
	if err == nil {
		out["user"] = user
	}

	return out
}

func ordersResponse(ctx context.Context, db *mongo.Database, orders []models.Order) []gin.H {
	userIDs := make([]primitive.ObjectID, 0, len(orders))
	seen := map[primitive.ObjectID]struct{}{}
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		userIDs = append(userIDs, order.UserID)
	}

	users := map[primitive.ObjectID]models.OrderUser{}
	if len(userIDs) > 0 {
		cursor, err := db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
		if err == nil {
			var list []models.OrderUser
			if err := cursor.All(ctx, &list); err == nil {
				for _, user := range list {
					users[user.ID] = user
				}
			}
		}
	}

	out := make([]gin.H, 0, len(orders))
	for _, order := range orders {
		entry := gin.H{
			"_id":             order.ID.Hex(),
			"userId":          order.UserID.Hex(),
			"items":           order.Items,
			"shippingAddress": order.ShippingAddress,
			"subtotal":        order.Subtotal,
			"discount":        order.Discount,
			"shippingCost":    order.ShippingCost,
			"total":           order.Total,
			"paymentMethod":   order.PaymentMethod,
			"status":          order.Status,
			"paymentStatus":   order.PaymentStatus,
			"createdAt":       order.CreatedAt,
			"updatedAt":       order.UpdatedAt,
		}
		if user, ok := users[order.UserID]; ok {
			entry["user"] = user
		}
		out = append(out, entry)
	}
	return out
}

// GetAllOrders lists every order for the admin panel, newest first. Pagination
// is optional; without page and limit the full list comes back.
func GetAllOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")
		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid pagination params"})
				return
			}
			findOptions.SetSkip((page - 1) * limit).SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": ordersResponse(ctx, db, orders)})
	}
}

// GetUserOrders lists one user's orders, newest first.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, findOptions)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orders": ordersResponse(ctx, db, orders)})
	}
}

func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": orderResponse(ctx, db, order)})
	}
}

/* =========================
   STATUS TRANSITIONS
========================= */

// UpdateOrderStatus overwrites the status field. Any enum member is accepted
// from any current value; there is no transition graph.
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
			return
		}

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status is required"})
			return
		}

		status := strings.ToLower(strings.TrimSpace(req.Status))
		if !validOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}

		log.Println("[ORDER] [INFO] status updated:", orderID.Hex(), "->", status)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": orderResponse(ctx, db, order)})
	}
}

// UpdatePaymentStatus mirrors UpdateOrderStatus for the payment field.
func UpdatePaymentStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
			return
		}

		var req paymentStatusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "paymentStatus is required"})
			return
		}

		status := strings.ToLower(strings.TrimSpace(req.PaymentStatus))
		if !validPaymentStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payment status"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOneAndUpdate(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"paymentStatus": status, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&order)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}

		log.Println("[ORDER] [INFO] payment status updated:", orderID.Hex(), "->", status)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": orderResponse(ctx, db, order)})
	}
}
