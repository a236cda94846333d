package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moraleja/portfolio/internal/application"
	"go.uber.org/zap"
)

type UploadHandler struct {
	service *application.UploadService
	logger  *zap.Logger
}

func NewUploadHandler(service *application.UploadService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{service: service, logger: logger}
}

// HandleUploadFile stores the multipart "file" field. With register=true the
// upload is also recorded as a gallery asset.
func (h *UploadHandler) HandleUploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "Missing file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open upload", zap.Error(err))
		return respondError(c, err)
	}
	defer file.Close()

	res, err := h.service.Upload(c.UserContext(), fileHeader.Filename, fileHeader.Header.Get(fiber.HeaderContentType), file, c.QueryBool("register", false))
	if err != nil {
		h.logger.Error("failed to upload file", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
