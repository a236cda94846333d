package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
	"github.com/moraleja/portfolio/internal/domain"
)

type ContactHandler struct {
	service *application.ContactService
}

func NewContactHandler(service *application.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req domain.ContactInquiry
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	id, err := h.service.Submit(c.UserContext(), clientKey(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"message": "Thanks, we will get back to you soon",
	})
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	contacts, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(contacts)
}

type UpdateStatusRequest struct {
	Status domain.InquiryStatus `json:"status"`
}

func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.service.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": req.Status})
}
