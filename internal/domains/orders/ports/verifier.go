package ports

import (
	"context"
	"errors"
)

// ErrItemUnavailable is the single failure mode of verification: a missing
// item, an unavailable item, and an unreachable catalog are indistinguishable
// to the order flow, which fails closed on all of them.
var ErrItemUnavailable = errors.New("menu item not found or unavailable")

// CatalogItem is the verified snapshot of a menu item at order-creation time.
// Price and availability are authoritative only for that instant.
type CatalogItem struct {
	ID        string
	Name      string
	Price     float64
	Available bool
}

// ItemVerifier checks a referenced menu item against the catalog service.
// One synchronous attempt, no retry; a failed call is terminal for the
// requesting order.
type ItemVerifier interface {
	Verify(ctx context.Context, menuItemID string) (*CatalogItem, error)
}
