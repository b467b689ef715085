package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/mailer"
	"backend/internal/models"
)

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required"`
	Image    string `json:"image"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userSummary is the response shape the client stores in auth state.
func userSummary(user models.User) gin.H {
	return gin.H{
		"_id":   user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"image": user.Image,
	}
}

// Signup creates or refreshes an unverified account and sends an OTP. An
// already verified email gets a 400 and no new document.
func Signup(db *mongo.Database, sender mailer.Sender, otpTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		if err == nil && existing.IsVerified {
			log.Println("[AUTH] [ERROR] signup email already verified:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		if err != nil && err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] signup user lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
			return
		}

		otp, err := generateOTP()
		if err != nil {
			log.Println("[AUTH] [ERROR] otp generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
			return
		}
		otpExpires := time.Now().Add(otpTTL)

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] signup password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
			return
		}

		now := time.Now()
		update := bson.M{
			"$set": bson.M{
				"name":       strings.TrimSpace(req.Name),
				"password":   string(hash),
				"phone":      strings.TrimSpace(req.Phone),
				"image":      req.Image,
				"otp":        otp,
				"otpExpires": otpExpires,
				"isVerified": false,
				"updatedAt":  now,
			},
			"$setOnInsert": bson.M{
				"email":     email,
				"role":      models.RoleUser,
				"createdAt": now,
			},
		}

		// create-or-update keeps re-signup of an unverified email idempotent
		if _, err := db.Collection("users").UpdateOne(ctx, bson.M{"email": email}, update, upsert()); err != nil {
			log.Println("[AUTH] [ERROR] signup upsert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Signup failed"})
			return
		}

		if err := sender.SendOTP(email, otp); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send OTP email"})
			return
		}

		log.Println("[AUTH] [INFO] signup otp issued for:", email)
		c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
	}
}

// VerifyOTP promotes an unverified account and issues the JWT.
func VerifyOTP(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and OTP are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User not found"})
			return
		}

		if user.IsVerified {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already verified"})
			return
		}

		if !otpMatches(user.OTP, user.OTPExpires, strings.TrimSpace(req.OTP), time.Now()) {
			log.Println("[AUTH] [ERROR] otp rejected for:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired OTP"})
			return
		}

		_, err := db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set":   bson.M{"isVerified": true, "updatedAt": time.Now()},
			"$unset": bson.M{"otp": "", "otpExpires": ""},
		})
		if err != nil {
			log.Println("[AUTH] [ERROR] otp verify update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
			return
		}

		token, err := issueToken(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Verification failed"})
			return
		}

		log.Println("[AUTH] [INFO] user verified:", email)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": userSummary(user)})
	}
}

// Login verifies the password hash and issues the JWT. Both unknown email and
// wrong password come back as the same 400.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for:", email)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}

		token, err := issueToken(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
			return
		}

		log.Println("[AUTH] [INFO] login succeeded:", email)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": userSummary(user)})
	}
}

func issueToken(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
