package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
	"github.com/moraleja/portfolio/internal/gallery"
)

type GalleryHandler struct {
	service *application.GalleryService
}

func NewGalleryHandler(service *application.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// GetGallery godoc
// @Summary One page of the public gallery
// @Description Filtered, paginated cards with their masonry row spans
// @Tags gallery
// @Produce json
// @Param search query string false "Free text"
// @Param tags query string false "Comma separated"
// @Param type query string false "all, image or video"
// @Param page query int false "1-based page"
// @Param pageSize query int false "Overrides the configured page size"
// @Param width query int false "Viewport width in px"
// @Param nav_type query string false "Navigation timing entry type"
// @Param nav_legacy query int false "Legacy navigation type code"
// @Success 200 {object} application.GalleryPage
func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	f := filterFromQuery(c)
	page, err := h.service.Page(c.UserContext(), application.GalleryQuery{
		Search:        f.Search,
		Tags:          f.Tags,
		Type:          f.MediaType,
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("pageSize", 0),
		ViewportWidth: c.QueryInt("width", 0),
		Navigation:    gallery.TimingFromStrings(c.Query("nav_type"), c.Query("nav_legacy")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

func (h *GalleryHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.service.Tags(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tags": tags})
}

// GetViewer describes the lightbox on an asset within the filtered gallery.
func (h *GalleryHandler) GetViewer(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	state, err := h.service.Viewer(c.UserContext(), id, filterFromQuery(c), c.QueryBool("info", true))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}
