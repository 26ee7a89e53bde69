package handlers

import (
	"github.com/Olumuyiwaray/blog-api/internal/service"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc *service.UserService
	dev bool
}

func NewUserHandler(svc *service.UserService, dev bool) *UserHandler {
	return &UserHandler{svc: svc, dev: dev}
}

type registerReq struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ProfileImage string `json:"profile_image"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "username, email and password are required"})
	}
	err := h.svc.Register(c.UserContext(), service.RegisterInput{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusCreated, "Signup successfull", nil)
}

func (h *UserHandler) VerifyEmail(c *fiber.Ctx) error {
	if err := h.svc.VerifyEmail(c.UserContext(), c.Params("token")); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "verification successfull", nil)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	token, user, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "login successfull", fiber.Map{"token": token, "user": user})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	user, err := h.svc.GetUserByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "user found", user)
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if err := h.svc.SendPasswordResetCode(c.UserContext(), req.Email); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "password reset code sent to email", nil)
}

type resetPasswordReq struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (h *UserHandler) VerifyResetCode(c *fiber.Ctx) error {
	if err := h.svc.VerifyResetCode(c.UserContext(), c.Params("code")); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "code valid", nil)
}

func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if err := h.svc.ResetPassword(c.UserContext(), req.Code, req.Password); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Password reset successful", nil)
}

type changeUsernameReq struct {
	Username string `json:"username"`
}

func (h *UserHandler) ChangeUsername(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req changeUsernameReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if err := h.svc.ChangeUsername(c.UserContext(), id, req.Username); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "Username updated successfully", nil)
}

type changePasswordReq struct {
	Password string `json:"password"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := callerID(c)
	if err != nil {
		return respondError(c, err, h.dev)
	}
	var req changePasswordReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"isSuccess": false, "message": "invalid body"})
	}
	if err := h.svc.ChangePassword(c.UserContext(), id, req.Password); err != nil {
		return respondError(c, err, h.dev)
	}
	return respondOK(c, fiber.StatusOK, "password updated successfully", nil)
}
