// Package handlers is the HTTP boundary: request decoding, identity
// extraction and the single place error kinds become status codes.
package handlers

import (
	"fmt"

	"github.com/Olumuyiwaray/blog-api/internal/apperrors"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps the error kind to a status and a caller-safe
// message. Internal detail is only attached in development mode.
func respondError(c *fiber.Ctx, err error, dev bool) error {
	status := apperrors.Status(err)
	body := fiber.Map{
		"isSuccess": false,
		"message":   apperrors.Public(err),
	}
	if dev && status == fiber.StatusInternalServerError {
		body["detail"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

func respondOK(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{"isSuccess": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// callerID reads the authenticated user id placed in locals by the JWT
// middleware.
func callerID(c *fiber.Ctx) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(fmt.Sprint(c.Locals("userID")))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("missing caller identity: %w", apperrors.ErrUnauthorized)
	}
	return id, nil
}

func paramID(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid %s: %w", name, apperrors.ErrBadRequest)
	}
	return id, nil
}
