package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// GetUsers lists every account for the admin panel, newest first. The hash
// never serializes (json:"-" on the model).
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("users").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			log.Println("[USER] [ERROR] list failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching users"})
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

func GetUserByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// GetUserStats backs the admin dashboard overview cards.
func GetUserStats(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		users := db.Collection("users")

		totalUsers, err := users.CountDocuments(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching user stats"})
			return
		}

		usersWithPhone, err := users.CountDocuments(ctx, bson.M{"phone": bson.M{"$exists": true, "$ne": ""}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching user stats"})
			return
		}

		usersWithImage, err := users.CountDocuments(ctx, bson.M{"image": bson.M{"$exists": true, "$ne": ""}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching user stats"})
			return
		}

		thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
		recentUsers, err := users.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": thirtyDaysAgo}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error while fetching user stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalUsers":     totalUsers,
			"usersWithPhone": usersWithPhone,
			"usersWithImage": usersWithImage,
			"recentUsers":    recentUsers,
		})
	}
}
