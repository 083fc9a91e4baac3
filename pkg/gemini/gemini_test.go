package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{Model: "gemini-2.0-flash"})
	require.Error(t, err)

	_, err = New(context.Background(), Config{APIKey: "key"})
	require.Error(t, err)
}

func TestGenerateReturnsCandidateText(t *testing.T) {
	t.Parallel()

	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		assert.True(t, strings.Contains(r.URL.Path, "gemini-test:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"product_search"}]},"finishReason":"STOP"}]}`))
	}))
	t.Cleanup(server.Close)

	m, err := New(context.Background(), Config{APIKey: "key", Model: "gemini-test", BaseURL: server.URL, Temperature: 0.7})
	require.NoError(t, err)

	out, err := m.Generate(context.Background(), []*schema.Message{
		schema.SystemMessage("You are an intent classifier."),
		schema.UserMessage("show me shoes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "product_search", out.Content)
	assert.Contains(t, body, "systemInstruction")
	assert.Contains(t, body, "show me shoes")
}

func TestGenerateRequiresUserContent(t *testing.T) {
	t.Parallel()

	m, err := New(context.Background(), Config{APIKey: "key", Model: "gemini-test", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), []*schema.Message{schema.SystemMessage("only system")})
	require.Error(t, err)
}
