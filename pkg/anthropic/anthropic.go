// Package anthropic adapts the Anthropic Messages API to eino's chat model interface.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type Config struct {
	APIKey      string  `envconfig:"API_KEY" split_words:"true"`
	Model       string  `envconfig:"MODEL" split_words:"true" default:"claude-3-5-haiku-latest"`
	Temperature float32 `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	MaxTokens   int64   `envconfig:"MAX_TOKENS" split_words:"true" default:"1024"`
	BaseURL     string  `envconfig:"BASE_URL" split_words:"true"`
	MaxRetries  int     `envconfig:"MAX_RETRIES" split_words:"true" default:"0"`
}

type ChatModel struct {
	client      sdk.Client
	model       sdk.Model
	temperature float32
	maxTokens   int64
}

var _ einomodel.BaseChatModel = (*ChatModel)(nil)

func New(cfg Config) (*ChatModel, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		return nil, errors.New("anthropic: model is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &ChatModel{
		client:      sdk.NewClient(opts...),
		model:       sdk.Model(modelName),
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	var (
		system   []sdk.TextBlockParam
		messages []sdk.MessageParam
	)
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			system = append(system, sdk.TextBlockParam{Text: msg.Content})
		case schema.Assistant:
			messages = append(messages, sdk.NewAssistantMessage(sdk.NewTextBlock(msg.Content)))
		default:
			messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
		}
	}
	if len(messages) == 0 {
		return nil, errors.New("anthropic: at least one user message is required")
	}

	params := sdk.MessageNewParams{
		Model:       m.model,
		Messages:    messages,
		MaxTokens:   m.maxTokens,
		Temperature: sdk.Float(float64(m.temperature)),
	}
	if len(system) > 0 {
		params.System = system
	}

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: create message: %w", err)
	}
	if resp == nil || len(resp.Content) == 0 {
		return nil, errors.New("anthropic: empty response")
	}

	var text strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return schema.AssistantMessage(text.String(), nil), nil
}

func (m *ChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("anthropic: streaming is not supported")
}
