package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

const maxResponseSizeBytes = 2 << 20

type UpstashConfig struct {
	URL     string        `envconfig:"URL" split_words:"true"`
	Token   string        `envconfig:"TOKEN" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// UpstashOption customizes Upstash.
type UpstashOption func(*Upstash)

func WithTTL(ttl time.Duration) UpstashOption {
	return func(u *Upstash) {
		u.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) UpstashOption {
	return func(u *Upstash) {
		if client != nil {
			u.httpClient = client
		}
	}
}

// Upstash stores intents in Upstash Redis through its REST API.
type Upstash struct {
	baseURL    string
	token      string
	httpClient *http.Client
	ttl        time.Duration
}

var _ contractx.IntentCache = (*Upstash)(nil)

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstash(cfg UpstashConfig, opts ...UpstashOption) (*Upstash, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	u := &Upstash{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(u)
		}
	}
	if u.ttl < 0 {
		return nil, errors.New("ttl must be >= 0")
	}
	return u, nil
}

func (u *Upstash) Get(ctx context.Context, key string) (string, bool, error) {
	resp, err := u.exec(ctx, []any{"GET", key})
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", contractx.ErrCache, err)
	}

	result := bytes.TrimSpace(resp.Result)
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return "", false, nil
	}

	var value string
	if err := json.Unmarshal(result, &value); err != nil {
		return "", false, fmt.Errorf("%w: decode cached value: %w", contractx.ErrCache, err)
	}
	return value, true, nil
}

func (u *Upstash) Set(ctx context.Context, key, value string) error {
	cmd := []any{"SET", key, value}
	if u.ttl > 0 {
		cmd = append(cmd, "EX", ttlSeconds(u.ttl))
	}
	if _, err := u.exec(ctx, cmd); err != nil {
		return fmt.Errorf("%w: %w", contractx.ErrCache, err)
	}
	return nil
}

func (u *Upstash) exec(ctx context.Context, command []any) (*redisRESTResponse, error) {
	if len(command) == 0 {
		return nil, errors.New("empty redis command")
	}

	body, err := json.Marshal(command)
	if err != nil {
		return nil, fmt.Errorf("marshal redis command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build redis request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+u.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute redis request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read redis response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("redis http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed redisRESTResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode redis response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}
	return &parsed, nil
}

func ttlSeconds(ttl time.Duration) int64 {
	seconds := ttl / time.Second
	if seconds <= 0 {
		return 1
	}
	if ttl%time.Second != 0 {
		seconds++
	}
	return int64(seconds)
}
