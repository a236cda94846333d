package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
	"github.com/moraleja/portfolio/internal/domain"
)

type AssetHandler struct {
	service *application.AssetService
	gallery *application.GalleryService
}

func NewAssetHandler(service *application.AssetService, gallery *application.GalleryService) *AssetHandler {
	return &AssetHandler{service: service, gallery: gallery}
}

// GetAssets godoc
// @Summary List assets
// @Tags assets
// @Produce json
// @Param search query string false "Matches title, description, keywords and alt text"
// @Param type query string false "image or video"
// @Param tags query string false "Comma separated; any tag matches"
// @Param projectId query int false "Owning project"
// @Param url query string false "Exact URL"
// @Success 200 {array} domain.Asset
func (h *AssetHandler) GetAssets(c *fiber.Ctx) error {
	q := domain.AssetQuery{
		URL:    c.Query("url"),
		Type:   domain.MediaType(c.Query("type")),
		Search: c.Query("search"),
		Tags:   splitList(c.Query("tags")),
	}
	if q.Type != "" && !q.Type.Valid() {
		return badRequest(c, "type must be image or video")
	}
	if raw := c.Query("projectId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid projectId")
		}
		q.ProjectID = &id
	}
	assets, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(assets)
}

func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	asset, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(asset)
}

// GetAssetWithContext returns the asset and the full ordered list it lives in,
// which the lightbox preview needs for previous/next.
func (h *AssetHandler) GetAssetWithContext(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	res, err := h.gallery.WithContext(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var req application.AssetInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	asset, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

func (h *AssetHandler) UpdateAsset(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	var patch domain.AssetPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}
	asset, err := h.service.Update(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(asset)
}

func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
