package qstash

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublish(t *testing.T) {
	t.Parallel()

	var got map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/publish/https://example.com/tickets", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messageId":"msg_123"}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "secret"})
	require.NoError(t, err)

	res, err := client.Publish(context.Background(), "https://example.com/tickets", map[string]string{"ticket_id": "t-1"})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", res.MessageID)
	assert.Equal(t, "t-1", got["ticket_id"])
}

func TestPublishErrorStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{URL: server.URL, Token: "bad"})
	require.NoError(t, err)

	_, err = client.Publish(context.Background(), "https://example.com/tickets", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{URL: "", Token: "x"})
	require.Error(t, err)

	_, err = NewClient(Config{URL: "https://qstash.upstash.io", Token: " "})
	require.Error(t, err)

	assert.False(t, Config{Token: "x"}.Enabled())
	assert.True(t, Config{Token: "x", Destination: "https://example.com"}.Enabled())
}
