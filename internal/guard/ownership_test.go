package guard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBlogRepo struct {
	blog *models.Blog
	err  error
}

func (f *fakeBlogRepo) Create(ctx context.Context, b *models.Blog) error { return nil }

func (f *fakeBlogRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.blog, nil
}

func (f *fakeBlogRepo) FindAll(ctx context.Context) ([]models.Blog, error) { return nil, nil }

func (f *fakeBlogRepo) Search(ctx context.Context, query string) ([]models.Blog, error) {
	return nil, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, id primitive.ObjectID, upd models.BlogUpdate) error {
	return nil
}

func (f *fakeBlogRepo) SetLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	return nil
}

func (f *fakeBlogRepo) PushComment(ctx context.Context, blogID, commentID primitive.ObjectID) error {
	return nil
}

func (f *fakeBlogRepo) PullComment(ctx context.Context, commentID primitive.ObjectID) error {
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func TestCheckAllowsAuthor(t *testing.T) {
	author := primitive.NewObjectID()
	blog := &models.Blog{ID: primitive.NewObjectID(), Author: author}
	g := New(&fakeBlogRepo{blog: blog})

	assert.NoError(t, g.Check(context.Background(), blog.ID, author))
}

func TestCheckRejectsNonAuthor(t *testing.T) {
	blog := &models.Blog{ID: primitive.NewObjectID(), Author: primitive.NewObjectID()}
	g := New(&fakeBlogRepo{blog: blog})

	err := g.Check(context.Background(), blog.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestCheckMissingBlogIsNotFound(t *testing.T) {
	g := New(&fakeBlogRepo{err: fmt.Errorf("blog: %w", apperrors.ErrNotFound)})

	err := g.Check(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCheckLookupFailurePropagates(t *testing.T) {
	boom := errors.New("primary stepped down")
	g := New(&fakeBlogRepo{err: boom})

	err := g.Check(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthorized)
}
