package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
)

type AuthHandler struct {
	service *application.AuthService
}

func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	res, err := h.service.Login(req.Username, req.Password, clientKey(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.service.Logout(bearerToken(c))
	return c.SendStatus(fiber.StatusNoContent)
}
