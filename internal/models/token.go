package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationToken is consulted once during email verification and
// then marked confirmed. Expired tokens are rejected, not deleted.
type VerificationToken struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Token       string             `bson:"token" json:"token"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	ExpiresAt   time.Time          `bson:"expires_at" json:"expires_at"`
	IsConfirmed bool               `bson:"is_confirmed" json:"is_confirmed"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ResetCode authorizes a password reset for its owning user.
type ResetCode struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	IsUsed    bool               `bson:"is_used" json:"is_used"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// EmailJob is the queue payload for outbound mail.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
