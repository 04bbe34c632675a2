package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"task-market.com/task-market/internal/audit"
	"task-market.com/task-market/internal/auth"
	config "task-market.com/task-market/internal/configs"
	httpapi "task-market.com/task-market/internal/http"
	"task-market.com/task-market/internal/moderation"
	repository "task-market.com/task-market/internal/repositories"
	"task-market.com/task-market/internal/services"
	"task-market.com/task-market/internal/telemetry"
	"task-market.com/task-market/internal/trust"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task marketplace HTTP API and the moderation audit writers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OtelEndpoint)
		if err != nil {
			return fmt.Errorf("setup tracing: %w", err)
		}

		database, privileged, err := openDatabases(cfg)
		if err != nil {
			return err
		}

		redisClient, err := config.NewRedisClient(cfg.RedisAddr())
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()

		taskRepo := repository.NewTaskRepository(database)
		appRepo := repository.NewApplicationRepository(database)
		logRepo := repository.NewModerationLogRepository(database)
		profileRepo := repository.NewProfileRepository(privileged)

		auditLogger := audit.NewLogger(logRepo, cfg.AuditWorkers, cfg.AuditQueueSize)

		taskService := services.NewTaskService(
			taskRepo,
			appRepo,
			logRepo,
			trust.NewScorer(profileRepo),
			moderation.NewEngine(nil),
			auditLogger,
		)
		applicationService := services.NewApplicationService(taskRepo, appRepo, services.LogMessenger{})

		if cfg.UnsignedTokens() {
			log.Println("WARNING: AUTH_JWT_SECRET is not set; bearer tokens are accepted without a signature check")
		}
		resolver := auth.NewChain(
			auth.NewSessionResolver(auth.NewRedisSessionStore(redisClient, cfg.SessionKeyPrefix), cfg.SessionCookie),
			auth.NewClaimResolver(profileRepo, cfg.JWTSecret),
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, httpapi.NewHandler(taskService, applicationService), resolver, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL())
			if err := e.Start(cfg.AppURL()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("http shutdown: %v", err)
		}
		auditLogger.Shutdown(shutdownCtx)
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}

		log.Println("HTTP server and audit writers shut down gracefully")
		return nil
	},
}

// openDatabases returns the service handle and the privileged handle used
// for profile reads. A single handle is shared when both DSNs match.
func openDatabases(cfg config.Config) (*gorm.DB, *gorm.DB, error) {
	database, err := config.NewDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := config.Migrate(database); err != nil {
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	if cfg.PrivilegedDatabaseDSN == cfg.DatabaseDSN {
		return database, database, nil
	}
	privileged, err := config.NewDatabase(cfg.DatabaseDriver, cfg.PrivilegedDatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open privileged database: %w", err)
	}
	return database, privileged, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
