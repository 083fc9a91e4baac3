package openrouter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewClient(Config{APIKey: "   "}))
	assert.NotNil(t, NewClient(Config{APIKey: "key", BaseURL: "https://example.org/api/v1/"}))
}

func TestCheckModel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		assert.Equal(t, "storefront", r.Header.Get("X-Title"))
		if strings.HasSuffix(r.URL.Path, "/models/known-model") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"known-model","object":"model","created":0,"owned_by":"test"}`))
			return
		}
		http.Error(w, `{"error":{"message":"not found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Config{APIKey: "key", BaseURL: server.URL, SiteName: "storefront"})
	require.NotNil(t, client)

	require.NoError(t, CheckModel(context.Background(), client, "known-model"))
	require.Error(t, CheckModel(context.Background(), client, "missing-model"))
	require.Error(t, CheckModel(context.Background(), nil, "known-model"))
}

func TestNewRequiresModel(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "key"}
	_, err := cfg.New(context.Background())
	require.Error(t, err)
}
