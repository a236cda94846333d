package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/moraleja/portfolio/internal/application"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Projects *ProjectHandler
	Assets   *AssetHandler
	Gallery  *GalleryHandler
	Contact  *ContactHandler
	Settings *ConfigHandler
	Upload   *UploadHandler
}

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(logger *zap.Logger, corsOrigins string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "portfolio",
		BodyLimit:    100 << 20,
		ErrorHandler: errorHandler(logger),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: corsOrigins != "*",
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400,
	}))
	return app
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(code).JSON(fiber.Map{"error": "Internal server error"})
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)
		return err
	}
}

// RegisterRoutes mounts the public and admin API.
func RegisterRoutes(app *fiber.App, h Handlers, auth *application.AuthService) {
	health := app.Group("/health")
	health.Get("/live", h.Health.Live)
	health.Get("/ready", h.Health.Ready)

	api := app.Group("/api")
	admin := RequireAdmin(auth)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/logout", admin, h.Auth.Logout)

	projects := api.Group("/projects")
	projects.Get("/", h.Projects.GetProjects)
	projects.Post("/reorder", admin, h.Projects.ReorderProjects)
	projects.Get("/:slug", h.Projects.GetProject)
	projects.Post("/", admin, h.Projects.CreateProject)
	projects.Put("/:id", admin, h.Projects.UpdateProject)
	projects.Delete("/:id", admin, h.Projects.DeleteProject)

	assets := api.Group("/assets")
	assets.Get("/", h.Assets.GetAssets)
	assets.Get("/:id", h.Assets.GetAsset)
	assets.Get("/:id/with-context", h.Assets.GetAssetWithContext)
	assets.Post("/", admin, h.Assets.CreateAsset)
	assets.Patch("/:id", admin, h.Assets.UpdateAsset)
	assets.Delete("/:id", admin, h.Assets.DeleteAsset)

	galleryRoutes := api.Group("/gallery")
	galleryRoutes.Get("/", h.Gallery.GetGallery)
	galleryRoutes.Get("/tags", h.Gallery.GetTags)
	galleryRoutes.Get("/viewer/:id", h.Gallery.GetViewer)

	contact := api.Group("/contact")
	contact.Post("/", h.Contact.Create)
	contact.Get("/", admin, h.Contact.List)
	contact.Patch("/:id/status", admin, h.Contact.UpdateStatus)

	settings := api.Group("/settings", admin)
	settings.Get("/", h.Settings.GetAllConfigs)
	settings.Get("/:key", h.Settings.GetConfig)
	settings.Put("/:key", h.Settings.UpdateConfig)

	api.Post("/upload", admin, h.Upload.HandleUploadFile)
}
