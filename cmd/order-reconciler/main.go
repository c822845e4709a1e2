// Command order-reconciler is a one-shot job that re-verifies pending orders
// against the menu service and cancels those whose item has vanished or been
// disabled since the order was placed.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	menuclient "github.com/foodorder/go-gin-services/internal/clients/http/menu"
	"github.com/foodorder/go-gin-services/internal/domains/orders/adapters/persistence/postgres"
	"github.com/foodorder/go-gin-services/internal/domains/orders/domain"
	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
	platformpostgres "github.com/foodorder/go-gin-services/internal/platform/postgres"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot reconcile orders")
	}

	menuURL := strings.TrimSpace(os.Getenv("MENU_SERVICE_URL"))
	if menuURL == "" {
		menuURL = "http://localhost:8082"
	}
	verifier, err := menuclient.NewClient(menuURL, &http.Client{Timeout: 5 * time.Second})
	if err != nil {
		log.Fatalf("failed to build menu client: %v", err)
	}

	repo := postgres.NewRepository(db)
	pending, err := repo.FindByStatus(ctx, domain.StatusPending)
	if err != nil {
		log.Fatalf("failed to load pending orders: %v", err)
	}

	var cancelled, kept, failed int
	for _, order := range pending {
		item, err := verifier.Verify(ctx, order.MenuItemID)
		switch {
		case err == nil && item.Available:
			kept++
			continue
		case err != nil && !errors.Is(err, ports.ErrItemUnavailable):
			failed++
			logger.Warn("verification failed, leaving order untouched",
				slog.String("order_id", order.ID), slog.String("error", err.Error()))
			continue
		}
		status := domain.StatusCancelled
		if _, err := repo.Update(ctx, order.ID, ports.FieldUpdate{Status: &status}); err != nil {
			failed++
			logger.Warn("failed to cancel order",
				slog.String("order_id", order.ID), slog.String("error", err.Error()))
			continue
		}
		cancelled++
		logger.Info("cancelled order with unavailable item",
			slog.String("order_id", order.ID), slog.String("menu_item_id", order.MenuItemID))
	}

	log.Printf("order reconciliation completed: %d pending, %d kept, %d cancelled, %d failed",
		len(pending), kept, cancelled, failed)
}
