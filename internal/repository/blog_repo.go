package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BlogRepository interface {
	Create(ctx context.Context, b *models.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	FindAll(ctx context.Context) ([]models.Blog, error)
	Search(ctx context.Context, query string) ([]models.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, upd models.BlogUpdate) error
	SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error
	PushComment(ctx context.Context, blogID, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, commentID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoBlogRepo struct {
	col *mongo.Collection
}

func NewMongoBlogRepo(db *mongo.Database) BlogRepository {
	return &mongoBlogRepo{col: db.Collection("blogs")}
}

func (r *mongoBlogRepo) Create(ctx context.Context, b *models.Blog) error {
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	if b.Likes == nil {
		b.Likes = []primitive.ObjectID{}
	}
	if b.Comments == nil {
		b.Comments = []primitive.ObjectID{}
	}
	res, err := r.col.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("insert blog: %w", mapWriteErr(err))
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

func (r *mongoBlogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	var b models.Blog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &b, nil
}

func (r *mongoBlogRepo) FindAll(ctx context.Context) ([]models.Blog, error) {
	return r.find(ctx, bson.M{})
}

// Search matches the query as a case-insensitive substring of title or body.
func (r *mongoBlogRepo) Search(ctx context.Context, query string) ([]models.Blog, error) {
	pattern := primitive.Regex{Pattern: query, Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"body": pattern},
	}}
	return r.find(ctx, filter)
}

func (r *mongoBlogRepo) find(ctx context.Context, filter bson.M) ([]models.Blog, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cur.Close(ctx)

	var blogs []models.Blog
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

// Update writes only the fields present in upd; an omitted field keeps
// its stored value.
func (r *mongoBlogRepo) Update(ctx context.Context, id primitive.ObjectID, upd models.BlogUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.Snippet != "" {
		set["snippet"] = upd.Snippet
	}
	if upd.Body != "" {
		set["body"] = upd.Body
	}
	if upd.Image != "" {
		set["image"] = upd.Image
	}
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *mongoBlogRepo) SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"likes": likes, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *mongoBlogRepo) PushComment(ctx context.Context, blogID, commentID primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, blogID, bson.M{
		"$push": bson.M{"comments": commentID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("push comment: %w", err)
	}
	return nil
}

// PullComment drops the comment reference from whichever blog holds it.
func (r *mongoBlogRepo) PullComment(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"comments": commentID},
		bson.M{"$pull": bson.M{"comments": commentID}},
	)
	if err != nil {
		return fmt.Errorf("pull comment: %w", err)
	}
	return nil
}

func (r *mongoBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("blog: %w", apperrors.ErrNotFound)
	}
	return nil
}
