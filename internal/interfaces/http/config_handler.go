package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
)

type ConfigHandler struct {
	service *application.ConfigService
}

func NewConfigHandler(service *application.ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// GetConfig godoc
// @Summary Get a site setting by key
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} domain.SiteSetting
// @Failure 404 {object} map[string]interface{}
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	setting, err := h.service.GetConfig(c.UserContext(), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(setting)
}

// GetAllConfigs godoc
// @Summary List stored site settings
// @Tags settings
// @Produce json
// @Success 200 {array} domain.SiteSetting
func (h *ConfigHandler) GetAllConfigs(c *fiber.Ctx) error {
	settings, err := h.service.GetAllConfigs(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// UpdateConfigRequest carries the setting's JSON-encoded value.
type UpdateConfigRequest struct {
	Value string `json:"value"`
}

// UpdateConfig godoc
// @Summary Update a site setting
// @Tags settings
// @Accept json
// @Produce json
// @Param key path string true "Setting key"
// @Param request body UpdateConfigRequest true "New value"
// @Success 200 {object} map[string]interface{}
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	key := c.Params("key")
	var req UpdateConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.service.UpdateConfig(c.UserContext(), key, req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Setting updated",
		"key":     key,
	})
}
