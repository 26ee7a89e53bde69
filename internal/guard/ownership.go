// Package guard is the authorization gate for mutating blog routes:
// only a post's author may edit or delete it. There are no roles and no
// admin override.
package guard

import (
	"context"
	"fmt"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/Olumuyiwaray/blog-api/internal/repository"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Guard struct {
	blogs repository.BlogRepository
}

func New(blogs repository.BlogRepository) *Guard {
	return &Guard{blogs: blogs}
}

// Check fetches the blog and compares its author to the caller by id.
// A missing blog is NotFound, a mismatch Unauthorized; lookup failures
// propagate untouched.
func (g *Guard) Check(ctx context.Context, blogID, userID primitive.ObjectID) error {
	blog, err := g.blogs.FindByID(ctx, blogID)
	if err != nil {
		return err
	}
	if blog.Author != userID {
		return fmt.Errorf("only the author may modify this post: %w", apperrors.ErrUnauthorized)
	}
	return nil
}

// Middleware runs Check against the blogId route param and the
// authenticated caller before the handler executes.
func (g *Guard) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		blogID, err := primitive.ObjectIDFromHex(c.Params("blogId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"isSuccess": false,
				"message":   "invalid blog id",
			})
		}
		userID, err := primitive.ObjectIDFromHex(fmt.Sprint(c.Locals("userID")))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"isSuccess": false,
				"message":   "unauthorized",
			})
		}
		if err := g.Check(c.UserContext(), blogID, userID); err != nil {
			return c.Status(apperrors.Status(err)).JSON(fiber.Map{
				"isSuccess": false,
				"message":   apperrors.Public(err),
			})
		}
		return c.Next()
	}
}
