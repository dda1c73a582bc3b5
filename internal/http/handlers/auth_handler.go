package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "greenbytes/internal/log"
	"greenbytes/internal/services"
	"greenbytes/internal/validate"
	"greenbytes/pkg/apierror"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apierror.BadRequest("invalid request body"))
	}
	if _, ok := validate.Email(req.Email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return fail(c, apierror.Unauthorized("invalid email or password"))
	}

	token, u, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return fail(c, apierror.Unauthorized("invalid email or password"))
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email, "role": u.Role})
	return c.JSON(fiber.Map{"token": token, "role": u.Role, "name": u.Name})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return fail(c, apierror.Unauthorized("missing bearer token"))
	}
	_ = h.Auth.Logout(token)
	applog.Audit(c, "auth.logout", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
