// Package menu calls the menu service to verify catalog items referenced by
// orders.
package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foodorder/go-gin-services/internal/domains/orders/ports"
)

var _ ports.ItemVerifier = (*Client)(nil)

// Client is the outbound HTTP gateway to the menu service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the menu client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("menu service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// itemEnvelope mirrors the menu service's {success, data} response shape.
type itemEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Available bool    `json:"status"`
	} `json:"data"`
}

// Verify fetches the catalog item behind menuItemID. A 404 or an empty body
// yields ports.ErrItemUnavailable; transport failures and unexpected statuses
// surface as plain errors so callers can tell "gone" from "unreachable".
// Order placement treats both as a rejection and never accepts on a guess.
func (c *Client) Verify(ctx context.Context, menuItemID string) (*ports.CatalogItem, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("menu client not configured")
	}
	menuItemID = strings.TrimSpace(menuItemID)
	if menuItemID == "" {
		return nil, ports.ErrItemUnavailable
	}
	url := fmt.Sprintf("%s/api/menu/%s", c.baseURL, menuItemID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call menu service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, ports.ErrItemUnavailable
	default:
		return nil, fmt.Errorf("menu service returned %s", resp.Status)
	}

	var envelope itemEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode menu response: %w", err)
	}
	if !envelope.Success || envelope.Data.ID == "" {
		return nil, ports.ErrItemUnavailable
	}
	return &ports.CatalogItem{
		ID:        envelope.Data.ID,
		Name:      envelope.Data.Name,
		Price:     envelope.Data.Price,
		Available: envelope.Data.Available,
	}, nil
}
