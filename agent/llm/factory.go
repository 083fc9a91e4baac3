package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	anthropicx "github.com/tanpawarit/Chative-Store-Assistant/pkg/anthropic"
	geminix "github.com/tanpawarit/Chative-Store-Assistant/pkg/gemini"
	ollamax "github.com/tanpawarit/Chative-Store-Assistant/pkg/ollama"
)

// NewChatModel builds the configured provider's chat model for one agent.
func NewChatModel(ctx context.Context, cfg Config, agentType contractx.AgentType) (einomodel.BaseChatModel, error) {
	switch cfg.provider() {
	case ProviderOllama:
		m, err := ollamax.New(cfg.OllamaFor(agentType))
		if err != nil {
			return nil, err
		}
		return m, nil
	case ProviderOpenRouter:
		orCfg := cfg.OpenRouterFor(agentType)
		return orCfg.New(ctx)
	case ProviderGemini:
		m, err := geminix.New(ctx, cfg.GeminiFor(agentType))
		if err != nil {
			return nil, err
		}
		return m, nil
	case ProviderAnthropic:
		m, err := anthropicx.New(cfg.AnthropicFor(agentType))
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", contractx.ErrValidation, cfg.Provider)
	}
}

// Models holds one generator per agent so each can run on its own model.
type Models struct {
	intent  contractx.Generator
	order   contractx.Generator
	product contractx.Generator
	support contractx.Generator
}

func NewModels(ctx context.Context, cfg Config, opts ...Option) (*Models, error) {
	build := func(agentType contractx.AgentType) (contractx.Generator, error) {
		chatModel, err := NewChatModel(ctx, cfg, agentType)
		if err != nil {
			return nil, fmt.Errorf("create %s model: %w", agentType, err)
		}
		all := append([]Option{
			WithMaxAttempts(cfg.MaxAttempts),
			WithBaseDelay(cfg.RetryBaseDelay),
			WithName(string(agentType)),
		}, opts...)
		client, err := NewClient(ctx, chatModel, all...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	intent, err := build(contractx.AgentTypeIntent)
	if err != nil {
		return nil, err
	}
	order, err := build(contractx.AgentTypeOrderTracking)
	if err != nil {
		return nil, err
	}
	product, err := build(contractx.AgentTypeProductRecommendation)
	if err != nil {
		return nil, err
	}
	support, err := build(contractx.AgentTypeCustomerSupport)
	if err != nil {
		return nil, err
	}

	return &Models{intent: intent, order: order, product: product, support: support}, nil
}

func (m *Models) Intent() contractx.Generator  { return m.intent }
func (m *Models) Order() contractx.Generator   { return m.order }
func (m *Models) Product() contractx.Generator { return m.product }
func (m *Models) Support() contractx.Generator { return m.support }
