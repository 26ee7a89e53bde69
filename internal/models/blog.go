package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a post. Author is immutable after creation; Likes holds at
// most one entry per user; Comments is an ordered list of comment ids.
type Blog struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Snippet   string               `bson:"snippet" json:"snippet"`
	Body      string               `bson:"body" json:"body"`
	Image     string               `bson:"image,omitempty" json:"image,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []primitive.ObjectID `bson:"comments" json:"comments"`
	Author    primitive.ObjectID   `bson:"author" json:"author"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// LikedBy reports whether userID is present in the likes set.
func (b *Blog) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// BlogUpdate carries the editable fields of a post. Author is absent on
// purpose: it cannot change after creation.
type BlogUpdate struct {
	Title   string `bson:"title,omitempty" json:"title,omitempty"`
	Snippet string `bson:"snippet,omitempty" json:"snippet,omitempty"`
	Body    string `bson:"body,omitempty" json:"body,omitempty"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
}

// Comment is attached to a blog post.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Post      primitive.ObjectID `bson:"post" json:"post"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
