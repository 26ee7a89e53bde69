package handlers

import (
	"github.com/Olumuyiwaray/blog-api/internal/models"
	"github.com/Olumuyiwaray/blog-api/internal/service"
	"github.com/gofiber/fiber/v2"
)

type BlogHandler struct {
	svc *service.BlogService
	dev bool
}

func NewBlogHandler(svc *service.BlogService, dev bool) *BlogHandler {
	return &BlogHandler{svc: svc, dev: dev}
}

func (h *BlogHandler) GetAllBlogs(c *fiber.Ctx) error {
	blogs, err := h.svc.GetAllBlogs(c.UserContext())
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "All Blog!", blogs)
}

func (h *BlogHandler) GetBlogByID(c *fiber.Ctx) error {
	id, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	blog, err := h.svc.GetBlogByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Blog Found!", blog)
}

func (h *BlogHandler) SearchBlogs(c *fiber.Ctx) error {
	query := c.Query("search")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "search query is required"})
	}
	blogs, err := h.svc.SearchBlogs(c.UserContext(), query)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Search results", blogs)
}

type createBlogReq struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
	Image   string `json:"image"`
}

func (h *BlogHandler) CreateBlog(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req createBlogReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if req.Title == "" || req.Snippet == "" || req.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "title, snippet and body are required"})
	}
	blog := &models.Blog{
		Title:   req.Title,
		Snippet: req.Snippet,
		Body:    req.Body,
		Image:   req.Image,
		Author:  userID,
	}
	if err := h.svc.CreateBlog(c.UserContext(), blog); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusCreated, "blog created", blog)
}

func (h *BlogHandler) EditBlog(c *fiber.Ctx) error {
	id, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req models.BlogUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if err := h.svc.EditBlog(c.UserContext(), id, req); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "blog edited successfully", nil)
}

func (h *BlogHandler) DeleteBlog(c *fiber.Ctx) error {
	id, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	if err := h.svc.DeleteBlog(c.UserContext(), id); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Post succesfully removed", nil)
}

func (h *BlogHandler) ToggleLike(c *fiber.Ctx) error {
	blogID, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	blog, err := h.svc.ToggleLike(c.UserContext(), blogID, userID)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "like toggled", blog)
}

func (h *BlogHandler) GetComments(c *fiber.Ctx) error {
	blogID, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	comments, err := h.svc.GetComments(c.UserContext(), blogID)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Blog Comments!", comments)
}

type commentReq struct {
	Content string `json:"content"`
}

func (h *BlogHandler) AddComment(c *fiber.Ctx) error {
	blogID, err := paramID(c, "blogId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	userID, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req commentReq
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "content is required"})
	}
	if err := h.svc.AddComment(c.UserContext(), blogID, userID, req.Content); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusCreated, "comment added sucessfully", nil)
}

func (h *BlogHandler) EditComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req commentReq
	if err := c.BodyParser(&req); err != nil || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "content is required"})
	}
	if err := h.svc.EditComment(c.UserContext(), commentID, req.Content); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "comment edited successfully", nil)
}

func (h *BlogHandler) DeleteComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "commentId")
	if err != nil {
		return respondError(c, err, h.dev)
	}
	if err := h.svc.DeleteComment(c.UserContext(), commentID); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Comment succesfully removed", nil)
}
