// Package ollama adapts a local Ollama runtime to eino's chat model interface.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/ollama/ollama/api"
)

const defaultHost = "http://localhost:11434"

type Config struct {
	Host        string        `envconfig:"HOST" split_words:"true" default:"http://localhost:11434"`
	Model       string        `envconfig:"MODEL" split_words:"true" default:"gemma:2b"`
	Temperature float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	NumCtx      int           `envconfig:"NUM_CTX" split_words:"true" default:"2048"`
	Timeout     time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
}

// ChatModel implements einomodel.BaseChatModel on top of the Ollama chat API.
type ChatModel struct {
	client      *api.Client
	model       string
	temperature float32
	numCtx      int
}

var _ einomodel.BaseChatModel = (*ChatModel)(nil)

func New(cfg Config) (*ChatModel, error) {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}
	parsed, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid host %q: %w", host, err)
	}

	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		return nil, errors.New("ollama: model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &ChatModel{
		client:      api.NewClient(parsed, &http.Client{Timeout: timeout}),
		model:       modelName,
		temperature: cfg.Temperature,
		numCtx:      cfg.NumCtx,
	}, nil
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	if len(input) == 0 {
		return nil, errors.New("ollama: message list cannot be empty")
	}

	messages := make([]api.Message, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		messages = append(messages, api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	options := map[string]any{
		"temperature": m.temperature,
	}
	if m.numCtx > 0 {
		options["num_ctx"] = m.numCtx
	}

	stream := false
	req := &api.ChatRequest{
		Model:    m.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}

	var content strings.Builder
	err := m.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: chat: %w", err)
	}

	return schema.AssistantMessage(content.String(), nil), nil
}

func (m *ChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("ollama: streaming is not supported")
}
