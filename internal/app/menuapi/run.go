// Package menuapi boots the menu catalog service process.
package menuapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	usersclient "github.com/foodorder/go-gin-services/internal/clients/http/users"
	menuhttp "github.com/foodorder/go-gin-services/internal/domains/menu/adapters/http"
	menumemory "github.com/foodorder/go-gin-services/internal/domains/menu/adapters/memory"
	menupostgres "github.com/foodorder/go-gin-services/internal/domains/menu/adapters/persistence/postgres"
	menuapp "github.com/foodorder/go-gin-services/internal/domains/menu/application"
	menuports "github.com/foodorder/go-gin-services/internal/domains/menu/ports"
	platformobservability "github.com/foodorder/go-gin-services/internal/platform/observability"
	platformpostgres "github.com/foodorder/go-gin-services/internal/platform/postgres"
	"github.com/foodorder/go-gin-services/internal/shared/auth"
)

const serviceName = "menu-api"

// Run boots the menu HTTP API. Catalog reads stay public; writes sit behind
// the user service token check when USER_SERVICE_URL is configured.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, cleanupRepo := buildMenuRepository(ctx, cfg, logger)
	defer cleanupRepo()
	service := menuapp.NewService(repo)

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", healthHandler)

	public := router.Group("/api/menu")
	protected := router.Group("/api/menu")
	if middleware := buildAuthMiddleware(cfg, logger); middleware != nil {
		protected.Use(middleware)
	}
	menuhttp.NewHandler(service).Register(public, protected)

	addr := ":" + cfg.Port
	logger.Info("menu API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("menu API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "service": serviceName, "status": "ok"})
}

func buildMenuRepository(ctx context.Context, cfg Config, logger *slog.Logger) (menuports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory menu repository")
		return menumemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return menumemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return menumemory.NewRepository(), func() {}
	}
	logger.Info("menu repository configured with postgres")
	return menupostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func buildAuthMiddleware(cfg Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg.UserServiceURL == "" {
		logger.Warn("USER_SERVICE_URL not set, catalog writes are unauthenticated")
		return nil
	}
	verifier, err := usersclient.NewClient(cfg.UserServiceURL, &http.Client{Timeout: cfg.ClientTimeout})
	if err != nil {
		logger.Warn("failed to build users client, catalog writes are unauthenticated", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("token verification enabled", slog.String("user_service_url", cfg.UserServiceURL))
	return auth.Middleware(verifier)
}
