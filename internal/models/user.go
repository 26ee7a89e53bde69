package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. Password and Salt never serialize to JSON.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name         string               `bson:"name" json:"name"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"`
	Salt         string               `bson:"salt" json:"-"`
	ProfileImage string               `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	IsVerified   bool                 `bson:"is_verified" json:"is_verified"`
	Posts        []primitive.ObjectID `bson:"posts" json:"posts"`
	CreatedAt    time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at" json:"updated_at"`
}

// Sanitize blanks the credential fields before the record leaves the service layer.
func (u *User) Sanitize() {
	u.Password = ""
	u.Salt = ""
}
