package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/edc/edc/internal/config"
	"github.com/edc/edc/internal/domain/audit"
	"github.com/edc/edc/internal/domain/compliance"
	"github.com/edc/edc/internal/domain/entry"
	"github.com/edc/edc/internal/domain/risk"
	"github.com/edc/edc/internal/domain/sdtm"
	"github.com/edc/edc/internal/domain/session"
	"github.com/edc/edc/internal/domain/synthetic"
	"github.com/edc/edc/internal/platform/auth"
	"github.com/edc/edc/internal/platform/db"
	"github.com/edc/edc/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "edc-server",
		Short: "Clinical trial EDC intelligence API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the EDC API server",
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
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
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
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required for migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
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

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Roll back by restoring from backup or applying a forward migration.")
			return nil
		},
	})

	return cmd
}

// seedCmd runs the full pipeline once without a server: generate a messy
// batch, normalize it, detect risks, and print what fired.
func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic batch and print detected risks",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetInt64("seed")

			gen := synthetic.NewDefault()
			if seed != 0 {
				gen = synthetic.NewGenerator(seed)
			}

			raw := gen.Generate(count)
			records := sdtm.MapToCanonical(raw)
			alerts := risk.Detect(records)

			fmt.Printf("Generated %d raw records, %d canonical records, %d alerts.\n",
				len(raw), len(records), len(alerts))
			for _, a := range alerts {
				fmt.Printf("%-10s %-14s %-24s %s\n", a.SubjectID, a.Category, a.Issue, a.RecommendedAction)
			}
			return nil
		},
	}
	cmd.Flags().Int("count", synthetic.DefaultCount, "Number of records to generate")
	cmd.Flags().Int64("seed", 0, "Random seed (0 means time-based)")
	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Audit trail store: Postgres when configured, in-memory otherwise.
	ctx := context.Background()
	var logRepo audit.LogRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		logRepo = audit.NewLogRepoPG(pool)
	} else {
		logger.Warn().Msg("no DATABASE_URL configured, audit trail is in-memory only")
		logRepo = audit.NewLogRepoMemory()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", session.SessionHeader},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.JWTSigningKey),
		}))
	}

	// Session working set
	sessions := session.NewManager(cfg.SessionTTL())
	e.Use(session.Middleware(sessions))

	// Access audit on workflow routes
	e.Use(middleware.Audit(logger))

	// Services
	auditSvc := audit.NewService(logRepo, logger)
	complianceSvc := compliance.NewService(logRepo, cfg.AuditLookback, logger)
	entrySvc := entry.NewService(auditSvc)

	// Routes
	apiV1 := e.Group("/api/v1")
	synthetic.NewHandler(synthetic.NewDefault(), sessions).RegisterRoutes(apiV1)
	sdtm.NewHandler(sessions).RegisterRoutes(apiV1)
	risk.NewHandler(sessions).RegisterRoutes(apiV1)
	audit.NewHandler(auditSvc, sessions).RegisterRoutes(apiV1)
	compliance.NewHandler(complianceSvc).RegisterRoutes(apiV1)
	entry.NewHandler(entrySvc, sessions).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	if pgRepo, ok := logRepo.(*audit.LogRepoPG); ok {
		e.GET("/health/db", db.HealthHandler(pgRepo.Pool()))
	}

	// Expired session cleanup
	sweepDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := sessions.Sweep(); removed > 0 {
					logger.Debug().Int("removed", removed).Msg("swept expired sessions")
				}
			case <-sweepDone:
				return
			}
		}
	}()

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	close(sweepDone)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
