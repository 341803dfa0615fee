package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/domain/diagnosis"
	"github.com/termbridge/termbridge/internal/domain/mapping"
	"github.com/termbridge/termbridge/internal/domain/terminology"
	"github.com/termbridge/termbridge/internal/platform/auth"
	"github.com/termbridge/termbridge/internal/platform/db"
	"github.com/termbridge/termbridge/internal/platform/middleware"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "termbridge-server",
		Short: "AYUSH terminology bridge API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(loadCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load reference data and curated mappings",
	}

	refdataCmd := &cobra.Command{
		Use:   "refdata",
		Short: "Load a reference vocabulary from CSV or the built-in seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			systemFlag, _ := cmd.Flags().GetString("system")
			file, _ := cmd.Flags().GetString("file")
			seed, _ := cmd.Flags().GetBool("seed")

			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			loader := terminology.NewLoader(terminology.NewCodeRepoPG(pool), logger)

			if seed {
				systems := terminology.Systems()
				if systemFlag != "" && !strings.EqualFold(systemFlag, "all") {
					system, err := terminology.ParseSystem(strings.ToUpper(systemFlag))
					if err != nil {
						return err
					}
					systems = []terminology.System{system}
				}
				return db.WithTx(ctx, pool, func(ctx context.Context) error {
					for _, system := range systems {
						result, err := loader.LoadEntries(ctx, system, terminology.SeedEntries(system))
						if err != nil {
							return err
						}
						if result.Failed > 0 {
							return fmt.Errorf("seed %s: %d rows failed: %v", system, result.Failed, result.Errors)
						}
						fmt.Printf("%s: seeded %d entries\n", system, result.Loaded)
					}
					return nil
				})
			}

			if file == "" {
				return fmt.Errorf("--file or --seed is required")
			}
			system, err := terminology.ParseSystem(strings.ToUpper(systemFlag))
			if err != nil {
				return err
			}
			if system == terminology.SystemAll {
				return fmt.Errorf("--system must name one vocabulary when loading from a file")
			}

			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := loader.LoadCSV(ctx, system, f)
			if err != nil {
				return err
			}
			fmt.Printf("%s: loaded %d, failed %d, skipped %d header / %d blank, %d duplicates\n",
				system, result.Loaded, result.Failed, result.SkippedHeaders, result.SkippedBlank, result.Duplicates)
			for _, e := range result.Errors {
				fmt.Println("  row error:", e)
			}
			return nil
		},
	}
	refdataCmd.Flags().String("system", "", "Vocabulary to load (NAMASTE|ICD11|SNOMED|LOINC|all)")
	refdataCmd.Flags().String("file", "", "Path to the CSV export")
	refdataCmd.Flags().Bool("seed", false, "Load the built-in demo vocabulary instead of a CSV")
	cmd.AddCommand(refdataCmd)

	mappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Build the curated mapping table",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			builder := mapping.NewBuilder(
				terminology.NewCodeRepoPG(pool),
				mapping.NewRepoPG(pool),
				logger)
			result, err := builder.Build(ctx, mapping.CuratedAlignments())
			if err != nil {
				return err
			}
			fmt.Printf("mappings: loaded %d, failed %d, dangling refs %d\n",
				result.Loaded, result.Failed, len(result.Dangling))
			for _, code := range result.Dangling {
				fmt.Println("  dangling reference:", code)
			}
			for _, e := range result.Errors {
				fmt.Println("  row error:", e)
			}
			return nil
		},
	}
	cmd.AddCommand(mappingsCmd)

	return cmd
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	issuer := auth.NewTokenIssuer(cfg.ABHATokenSecret, time.Duration(cfg.ABHATokenTTLMin)*time.Minute)
	provider := auth.NewMockProvider(nil)

	// Login stays outside the guarded groups.
	public := e.Group("/api/v1")
	public.Use(middleware.RateLimit(rateLimitCfg))
	auth.NewHandler(provider, issuer, logger).RegisterRoutes(public)

	apiV1 := e.Group("/api/v1")
	fhirGroup := e.Group("/fhir")
	for _, g := range []*echo.Group{apiV1, fhirGroup} {
		g.Use(middleware.RateLimit(rateLimitCfg))
		if cfg.ResolvedAuthMode() == "development" {
			g.Use(auth.DevMiddleware())
		} else {
			g.Use(auth.Middleware(issuer, logger))
		}
	}

	codeRepo := terminology.NewCodeRepoPG(pool)
	mappingSvc := mapping.NewService(mapping.NewRepoPG(pool), logger)
	terminologySvc := terminology.NewService(codeRepo, mappingSvc, logger)
	diagnosisSvc := diagnosis.NewService(diagnosis.NewRepoPG(pool), logger)

	terminology.NewHandler(terminologySvc).RegisterRoutes(apiV1)
	mapping.NewHandler(mappingSvc).RegisterRoutes(apiV1, fhirGroup)
	diagnosis.NewHandler(diagnosisSvc).RegisterRoutes(apiV1, fhirGroup)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("auth_mode", cfg.ResolvedAuthMode()).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
