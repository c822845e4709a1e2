// Package users delegates bearer token verification to the user service.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/foodorder/go-gin-services/internal/shared/auth"
)

var _ auth.TokenVerifier = (*Client)(nil)

// Client asks the user service who a bearer token belongs to.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the user service client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("user service base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// VerifyToken forwards the token to the user service profile endpoint. A
// non-2xx answer or transport failure yields auth.ErrInvalidToken so callers
// fail closed.
func (c *Client) VerifyToken(ctx context.Context, token string) (*auth.Identity, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("users client not configured")
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	url := c.baseURL + "/api/users/profile/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrInvalidToken, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, auth.ErrInvalidToken
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile response: %w", auth.ErrInvalidToken, err)
	}
	if profile.ID == "" {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Identity{
		ID:       profile.ID,
		Username: profile.Username,
		Email:    profile.Email,
		Name:     profile.Name,
	}, nil
}
