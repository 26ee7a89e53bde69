package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/cache"
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/Olumuyiwaray/blog-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BlogService orchestrates the read/write paths for posts and comments.
// Reads are cache-aside over the blogs:all key; writes go straight to
// the store and rely on the change feed watcher for invalidation, so
// writes from any process keep caches everywhere coherent.
type BlogService struct {
	blogs    repository.BlogRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	cache    cache.Store
	cacheTTL time.Duration
	log      *zap.SugaredLogger
}

func NewBlogService(
	blogs repository.BlogRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
	c cache.Store,
	cacheTTL time.Duration,
	log *zap.SugaredLogger,
) *BlogService {
	return &BlogService{
		blogs:    blogs,
		comments: comments,
		users:    users,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetAllBlogs serves the aggregate listing cache-aside. A cache error
// is treated exactly like a miss. An empty store is NotFound and does
// not populate the cache.
func (s *BlogService) GetAllBlogs(ctx context.Context) ([]models.Blog, error) {
	var cached []models.Blog
	if ok, err := s.cache.Get(ctx, cache.KeyAllBlogs, &cached); err == nil && ok {
		return cached, nil
	}

	blogs, err := s.blogs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, fmt.Errorf("no posts found: %w", apperrors.ErrNotFound)
	}

	if err := s.cache.Set(ctx, cache.KeyAllBlogs, blogs, s.cacheTTL); err != nil {
		s.log.Warnf("populate %s: %v", cache.KeyAllBlogs, err)
	}
	return blogs, nil
}

func (s *BlogService) GetBlogByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return s.blogs.FindByID(ctx, id)
}

// SearchBlogs matches the query case-insensitively against title and
// body. An empty result is NotFound, not an empty success; callers of
// the existing API depend on that shape.
func (s *BlogService) SearchBlogs(ctx context.Context, query string) ([]models.Blog, error) {
	blogs, err := s.blogs.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, fmt.Errorf("nothing found: %w", apperrors.ErrNotFound)
	}
	return blogs, nil
}

// CreateBlog inserts the post and then appends it to the author's post
// list as an explicit, sequenced step. The follow-up is best-effort:
// the post exists either way and the failure is logged.
func (s *BlogService) CreateBlog(ctx context.Context, b *models.Blog) error {
	if err := s.blogs.Create(ctx, b); err != nil {
		return err
	}
	if err := s.users.AddPost(ctx, b.Author, b.ID); err != nil {
		s.log.Warnf("append post %s to author %s: %v", b.ID.Hex(), b.Author.Hex(), err)
	}
	return nil
}

func (s *BlogService) EditBlog(ctx context.Context, id primitive.ObjectID, upd models.BlogUpdate) error {
	return s.blogs.Update(ctx, id, upd)
}

// DeleteBlog removes the post and drops it from the author's post
// list. Comments are deliberately left in place; they keep a post
// back-reference for later cleanup.
func (s *BlogService) DeleteBlog(ctx context.Context, id primitive.ObjectID) error {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.users.RemovePost(ctx, blog.Author, id); err != nil {
		s.log.Warnf("remove post %s from author %s: %v", id.Hex(), blog.Author.Hex(), err)
	}
	return nil
}

// ToggleLike adds the user to the likes set if absent, removes them if
// present, and returns the updated post. Two calls restore the
// original set.
func (s *BlogService) ToggleLike(ctx context.Context, blogID, userID primitive.ObjectID) (*models.Blog, error) {
	blog, err := s.blogs.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if blog.LikedBy(userID) {
		likes := make([]primitive.ObjectID, 0, len(blog.Likes)-1)
		for _, id := range blog.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		blog.Likes = likes
	} else {
		blog.Likes = append(blog.Likes, userID)
	}

	if err := s.blogs.SetLikes(ctx, blogID, blog.Likes); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) GetComments(ctx context.Context, blogID primitive.ObjectID) ([]models.Comment, error) {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.comments.FindByPost(ctx, blogID)
}

func (s *BlogService) AddComment(ctx context.Context, blogID, userID primitive.ObjectID, content string) error {
	if _, err := s.blogs.FindByID(ctx, blogID); err != nil {
		return err
	}
	comment := &models.Comment{User: userID, Post: blogID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return err
	}
	return s.blogs.PushComment(ctx, blogID, comment.ID)
}

func (s *BlogService) EditComment(ctx context.Context, commentID primitive.ObjectID, content string) error {
	return s.comments.UpdateContent(ctx, commentID, content)
}

// DeleteComment removes the comment and then drops its reference from
// the parent post as a best-effort follow-up.
func (s *BlogService) DeleteComment(ctx context.Context, commentID primitive.ObjectID) error {
	if _, err := s.comments.FindByID(ctx, commentID); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	if err := s.blogs.PullComment(ctx, commentID); err != nil {
		s.log.Warnf("detach comment %s from parent post: %v", commentID.Hex(), err)
	}
	return nil
}
