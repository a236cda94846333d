package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
)

type ProjectHandler struct {
	service *application.ProjectService
}

func NewProjectHandler(service *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// GetProjects godoc
// @Summary List projects
// @Description Projects in display order
// @Tags projects
// @Produce json
// @Success 200 {array} domain.Project
func (h *ProjectHandler) GetProjects(c *fiber.Ctx) error {
	projects, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// GetProject godoc
// @Summary Get a project by slug
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} domain.Project
// @Failure 404 {object} map[string]interface{}
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req application.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	project, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	var req application.ProjectInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	project, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(project)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "Invalid ID")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderRequest lists every project id in the new order.
type ReorderRequest struct {
	OrderedIDs []int `json:"orderedIds"`
}

func (h *ProjectHandler) ReorderProjects(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.service.Reorder(c.UserContext(), req.OrderedIDs); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Projects reordered"})
}
