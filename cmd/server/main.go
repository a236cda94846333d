package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/moraleja/portfolio/internal/application"
	"github.com/moraleja/portfolio/internal/config"
	"github.com/moraleja/portfolio/internal/email"
	"github.com/moraleja/portfolio/internal/gallery"
	"github.com/moraleja/portfolio/internal/infrastructure/repository"
	handlers "github.com/moraleja/portfolio/internal/interfaces/http"
	"github.com/moraleja/portfolio/internal/scheduler"
	services "github.com/moraleja/portfolio/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := repository.Open(ctx, cfg.GetDBDriver(), cfg.GetDBConnString())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repository.Migrate(ctx, db, cfg.GetDBDriver()); err != nil {
		return err
	}

	// Repositories
	projectRepo := repository.NewProjectRepository(db)
	assetRepo := repository.NewGalleryRepository(db)
	settingsRepo := repository.NewConfigRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Shared state swept in the background
	listingCache := application.NewListingCache(5 * time.Minute)
	sessions := application.NewSessionManager(12 * time.Hour)
	loginLimiter := application.NewRateLimiter(15*time.Minute, 10)
	contactLimiter := application.NewRateLimiter(time.Hour, 5)

	// Services
	settings := application.NewConfigService(settingsRepo, application.SiteDefaults{
		PredefinedTags:  cfg.Site.PredefinedTags,
		GalleryPageSize: cfg.Site.GalleryPageSize,
	})
	galleryService := application.NewGalleryService(assetRepo, settings, listingCache, gallery.DefaultLedger(), logger)
	projectService := application.NewProjectService(projectRepo)
	projectService.OnChange(galleryService.Invalidate)
	assetService := application.NewAssetService(assetRepo, listingCache)
	authService := application.NewAuthService(cfg.AdminUser, cfg.AdminPassword, sessions, loginLimiter, logger)
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD is empty, admin login is disabled")
	}

	var notifier application.ContactNotifier
	if cfg.EmailEnabled() {
		emailClient, err := email.NewClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword,
			cfg.SMTPFromName, cfg.SMTPFromEmail, cfg.ContactInbox, logger)
		if err != nil {
			logger.Warn("email client disabled", zap.Error(err))
		} else {
			notifier = emailClient
		}
	}
	contactService := application.NewContactService(contactRepo, notifier, contactLimiter, logger)

	var store application.ObjectStore
	if cfg.S3BucketName != "" {
		s3, err := services.NewS3Service(ctx, cfg.S3BucketName, cfg.S3Region, cfg.S3PublicBaseURL)
		if err != nil {
			logger.Warn("uploads disabled", zap.Error(err))
		} else {
			store = s3
		}
	}
	uploadService := application.NewUploadService(store, assetService, logger)

	app := handlers.NewApp(logger, cfg.CORSOrigins)
	handlers.RegisterRoutes(app, handlers.Handlers{
		Health:   handlers.NewHealthHandler(db),
		Auth:     handlers.NewAuthHandler(authService),
		Projects: handlers.NewProjectHandler(projectService),
		Assets:   handlers.NewAssetHandler(assetService, galleryService),
		Gallery:  handlers.NewGalleryHandler(galleryService),
		Contact:  handlers.NewContactHandler(contactService),
		Settings: handlers.NewConfigHandler(settings),
		Upload:   handlers.NewUploadHandler(uploadService, logger),
	}, authService)

	sweeper := scheduler.NewSweeper(time.Minute, logger,
		scheduler.Job{Name: "sessions", Run: sessions.Cleanup},
		scheduler.Job{Name: "login-limits", Run: loginLimiter.Cleanup},
		scheduler.Job{Name: "contact-limits", Run: contactLimiter.Cleanup},
		scheduler.Job{Name: "listings", Run: listingCache.Cleanup},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sweeper.Run(gctx) })
	g.Go(func() error {
		logger.Info("server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("driver", cfg.GetDBDriver()),
			zap.Strings("cors", strings.Split(cfg.CORSOrigins, ",")),
		)
		return app.Listen(":" + cfg.ServerPort)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
