package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/moraleja/portfolio/internal/application"
	"github.com/moraleja/portfolio/internal/config"
	"github.com/moraleja/portfolio/internal/gallery"
	"github.com/moraleja/portfolio/internal/infrastructure/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every subcommand needs once the database is open.
type env struct {
	cfg    *config.Config
	db     *sql.DB
	logger *zap.Logger
	out    io.Writer
}

type options struct {
	driver  string
	dsn     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Maintenance tasks for the portfolio database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.driver, "driver", "", "database driver (postgres or sqlite3), overrides DB_DRIVER")
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "connection string or sqlite path, overrides the environment")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newMigrateCmd(opts),
		newImportProjectsCmd(opts),
		newBackfillAssetsCmd(opts),
		newTagsCmd(opts),
	)
	return root
}

// withEnv loads config, opens the database and runs fn.
func withEnv(cmd *cobra.Command, opts *options, fn func(ctx context.Context, e *env) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.driver != "" {
		cfg.DBDriver = opts.driver
	}
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	logger, err := config.NewLogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dsn := cfg.GetDBConnString()
	if opts.dsn != "" {
		dsn = opts.dsn
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := repository.Open(ctx, cfg.GetDBDriver(), dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, &env{cfg: cfg, db: db, logger: logger, out: cmd.OutOrStdout()})
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				if err := repository.Migrate(ctx, e.db, e.cfg.GetDBDriver()); err != nil {
					return err
				}
				fmt.Fprintln(e.out, "schema is up to date")
				return nil
			})
		},
	}
}

func newImportProjectsCmd(opts *options) *cobra.Command {
	var baseURL string
	cmd := &cobra.Command{
		Use:   "import-projects <projects.json>",
		Short: "Import projects from the legacy static JSON file",
		Long: `Reads the legacy projects.json array and stores each project with its
content converted to blocks. Image paths starting with "/" are prefixed with
--base-url. Slugs that repeat in the file or already exist are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				if err := repository.Migrate(ctx, e.db, e.cfg.GetDBDriver()); err != nil {
					return err
				}
				base := baseURL
				if base == "" {
					base = e.cfg.Site.ImportBaseURL
				}
				svc := application.NewImportService(repository.NewProjectRepository(e.db), nil, base, e.logger)
				report, err := svc.ImportProjects(ctx, f)
				if err != nil {
					return err
				}
				return printJSON(e.out, report)
			})
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "prefix for relative media paths, defaults to the site file's import_base_url")
	return cmd
}

func newBackfillAssetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-assets",
		Short: "Register media referenced by project blocks as gallery assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				assets := application.NewAssetService(repository.NewGalleryRepository(e.db), application.NewListingCache(time.Minute))
				svc := application.NewImportService(repository.NewProjectRepository(e.db), assets, "", e.logger)
				report, err := svc.BackfillAssets(ctx)
				if err != nil {
					return err
				}
				return printJSON(e.out, report)
			})
		},
	}
}

func newTagsCmd(opts *options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Print the gallery tag bar, predefined tags first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, opts, func(ctx context.Context, e *env) error {
				tags, err := repository.NewGalleryRepository(e.db).DistinctTags(ctx, !all)
				if err != nil {
					return err
				}
				settings := application.NewConfigService(repository.NewConfigRepository(e.db), application.SiteDefaults{
					PredefinedTags: e.cfg.Site.PredefinedTags,
				})
				predefined, err := settings.PredefinedTags(ctx)
				if err != nil {
					return err
				}
				for _, t := range gallery.AvailableTags(tags, predefined) {
					fmt.Fprintln(e.out, gallery.FormatTagForDisplay(t))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include assets hidden from the gallery")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
