// Package orderapi boots the order service process.
package orderapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	menuclient "github.com/foodorder/go-gin-services/internal/clients/http/menu"
	usersclient "github.com/foodorder/go-gin-services/internal/clients/http/users"
	ordershttp "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/http"
	ordersmemory "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/memory"
	ordersobs "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/foodorder/go-gin-services/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/foodorder/go-gin-services/internal/domains/orders/application"
	ordersports "github.com/foodorder/go-gin-services/internal/domains/orders/ports"
	platformobservability "github.com/foodorder/go-gin-services/internal/platform/observability"
	platformpostgres "github.com/foodorder/go-gin-services/internal/platform/postgres"
	"github.com/foodorder/go-gin-services/internal/shared/auth"
)

const serviceName = "order-api"

// Run boots the order HTTP API with observability, repositories, and the menu
// verification gateway wired.
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

	repo, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	verifier, err := menuclient.NewClient(cfg.MenuServiceURL, &http.Client{Timeout: cfg.ClientTimeout})
	if err != nil {
		return fmt.Errorf("failed to build menu client: %w", err)
	}

	coreService := ordersapp.NewService(repo, verifier)
	service := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	router.GET("/health", healthHandler)

	group := router.Group("/api/orders")
	if middleware := buildAuthMiddleware(cfg, logger); middleware != nil {
		group.Use(middleware)
	}
	ordershttp.NewHandler(service).Register(group)

	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "service": serviceName, "status": "ok"})
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ordersports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), func() {}
	}
	logger.Info("order repository configured with postgres")
	return orderspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func buildAuthMiddleware(cfg Config, logger *slog.Logger) gin.HandlerFunc {
	if cfg.UserServiceURL == "" {
		logger.Warn("USER_SERVICE_URL not set, order routes are unauthenticated")
		return nil
	}
	verifier, err := usersclient.NewClient(cfg.UserServiceURL, &http.Client{Timeout: cfg.ClientTimeout})
	if err != nil {
		logger.Warn("failed to build users client, order routes are unauthenticated", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("token verification enabled", slog.String("user_service_url", cfg.UserServiceURL))
	return auth.Middleware(verifier)
}
