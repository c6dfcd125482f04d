package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"saraban/internal/service"
)

var validate = validator.New()

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login checks staff credentials and returns the user record. A mismatch
// is a 401, distinct from every other failure. No token is issued; the
// client keeps the record as its session context.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAYLOAD", "malformed login request")
		}
		if err := validate.Struct(req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_CREDENTIALS", "username and password are required")
		}

		user, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrBadCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid username or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(user)
	}
}
