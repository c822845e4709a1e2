package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodorder/go-gin-services/internal/shared/auth"
)

func TestVerifyToken_ReturnsIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/profile/", r.URL.Path)
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","username":"alice","email":"alice@example.com","name":"Alice"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	identity, err := client.VerifyToken(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "alice", identity.Username)
}

func TestVerifyToken_RejectedByUserService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.VerifyToken(context.Background(), "expired")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_EmptyToken(t *testing.T) {
	client, err := NewClient("http://localhost:9", nil)
	require.NoError(t, err)

	_, err = client.VerifyToken(context.Background(), "   ")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_TransportFailureFailsClosed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	_, err = client.VerifyToken(context.Background(), "abc123")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
