// Package gemini adapts Google's genai SDK to eino's chat model interface.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

type Config struct {
	APIKey      string  `envconfig:"API_KEY" split_words:"true"`
	Model       string  `envconfig:"MODEL" split_words:"true" default:"gemini-2.0-flash"`
	Temperature float32 `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	MaxTokens   int32   `envconfig:"MAX_TOKENS" split_words:"true" default:"2000"`
	BaseURL     string  `envconfig:"BASE_URL" split_words:"true"`
}

type ChatModel struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

var _ einomodel.BaseChatModel = (*ChatModel)(nil)

func New(ctx context.Context, cfg Config) (*ChatModel, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	modelName := strings.TrimSpace(cfg.Model)
	if modelName == "" {
		return nil, errors.New("gemini: model is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &ChatModel{
		client:      client,
		model:       modelName,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			system = append(system, msg.Content)
		case schema.Assistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(contents) == 0 {
		return nil, errors.New("gemini: at least one user message is required")
	}

	temperature := m.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: m.maxTokens,
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}

	result, err := m.client.Models.GenerateContent(ctx, m.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}
	if result == nil {
		return nil, errors.New("gemini: empty response")
	}

	return schema.AssistantMessage(result.Text(), nil), nil
}

func (m *ChatModel) Stream(context.Context, []*schema.Message, ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("gemini: streaming is not supported")
}
