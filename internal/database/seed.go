package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
)

// SeedAdminUser makes sure the account from ADMIN_EMAIL/ADMIN_PASSWORD
// exists with the admin role. Skips silently when the env vars are unset
// so local setups without an admin still boot.
func SeedAdminUser(db *mongo.Database, email, password string) error {
	if email == "" || password == "" {
		log.Println("[SEED] [INFO] ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"password":   string(hash),
			"role":       models.RoleAdmin,
			"isVerified": true,
		},
		"$setOnInsert": bson.M{
			"name":      "Admin",
			"email":     email,
			"createdAt": now,
		},
	}

	result, err := db.Collection("users").UpdateOne(ctx, bson.M{"email": email},
		update, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	if result.UpsertedID != nil {
		log.Println("[SEED] [INFO] admin user created:", email)
	} else {
		log.Println("[SEED] [INFO] admin user refreshed:", email)
	}
	return nil
}
