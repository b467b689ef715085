package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents the application user account. Unverified accounts carry a
// pending OTP until the signup flow completes.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Role         string             `bson:"role" json:"role"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	OTP          string             `bson:"otp,omitempty" json:"-"`
	OTPExpires   *time.Time         `bson:"otpExpires,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
