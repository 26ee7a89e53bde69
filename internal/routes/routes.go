package routes

import (
	"github.com/Olumuyiwaray/blog-api/internal/guard"
	"github.com/Olumuyiwaray/blog-api/internal/handlers"
	"github.com/Olumuyiwaray/blog-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Register wires the route tree. Mutating blog routes require a valid
// token; edit/delete additionally pass the ownership guard.
func Register(app *fiber.App, users *handlers.UserHandler, blogs *handlers.BlogHandler, g *guard.Guard, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	owner := g.Middleware()

	u := app.Group("/users")
	u.Post("/register", users.Register)
	u.Post("/login", users.Login)
	u.Get("/verify/:token", users.VerifyEmail)
	u.Post("/forgot-password", users.ForgotPassword)
	u.Get("/reset-password/:code", users.VerifyResetCode)
	u.Post("/reset-password", users.ResetPassword)
	u.Get("/me", auth, users.Me)
	u.Patch("/username", auth, users.ChangeUsername)
	u.Patch("/password", auth, users.ChangePassword)

	b := app.Group("/blogs")
	b.Get("/", blogs.GetAllBlogs)
	b.Get("/search", blogs.SearchBlogs)
	b.Get("/:blogId", blogs.GetBlogByID)
	b.Post("/", auth, blogs.CreateBlog)
	b.Put("/:blogId", auth, owner, blogs.EditBlog)
	b.Delete("/:blogId", auth, owner, blogs.DeleteBlog)
	b.Post("/:blogId/like", auth, blogs.ToggleLike)
	b.Get("/:blogId/comments", blogs.GetComments)
	b.Post("/:blogId/comments", auth, blogs.AddComment)
	b.Patch("/:blogId/comments/:commentId", auth, blogs.EditComment)
	b.Delete("/:blogId/comments/:commentId", auth, blogs.DeleteComment)
}
