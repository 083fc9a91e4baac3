package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	anthropicx "github.com/tanpawarit/Chative-Store-Assistant/pkg/anthropic"
	geminix "github.com/tanpawarit/Chative-Store-Assistant/pkg/gemini"
	ollamax "github.com/tanpawarit/Chative-Store-Assistant/pkg/ollama"
	openrouterx "github.com/tanpawarit/Chative-Store-Assistant/pkg/openrouter"
)

const (
	ProviderOllama     = "ollama"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
)

type Config struct {
	Provider       string        `envconfig:"PROVIDER" split_words:"true" default:"ollama"`
	MaxAttempts    int           `envconfig:"MAX_ATTEMPTS" split_words:"true" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"RETRY_BASE_DELAY" split_words:"true" default:"1s"`

	IntentModel  string `envconfig:"INTENT_MODEL" split_words:"true"`
	OrderModel   string `envconfig:"ORDER_MODEL" split_words:"true"`
	ProductModel string `envconfig:"PRODUCT_MODEL" split_words:"true"`
	SupportModel string `envconfig:"SUPPORT_MODEL" split_words:"true"`

	Ollama     ollamax.Config     `envconfig:"OLLAMA"`
	OpenRouter openrouterx.Config `envconfig:"OPENROUTER"`
	Gemini     geminix.Config     `envconfig:"GEMINI"`
	Anthropic  anthropicx.Config  `envconfig:"ANTHROPIC"`
}

func (c Config) Validate() error {
	switch c.provider() {
	case ProviderOllama:
		if strings.TrimSpace(c.Ollama.Model) == "" {
			return fmt.Errorf("%w: ollama model is required", contractx.ErrValidation)
		}
	case ProviderOpenRouter:
		if strings.TrimSpace(c.OpenRouter.APIKey) == "" {
			return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
		}
		if strings.TrimSpace(c.OpenRouter.Model) == "" {
			return fmt.Errorf("%w: openrouter model is required", contractx.ErrValidation)
		}
	case ProviderGemini:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return fmt.Errorf("%w: gemini api key is required", contractx.ErrValidation)
		}
	case ProviderAnthropic:
		if strings.TrimSpace(c.Anthropic.APIKey) == "" {
			return fmt.Errorf("%w: anthropic api key is required", contractx.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown llm provider %q", contractx.ErrValidation, c.Provider)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1", contractx.ErrValidation)
	}
	if c.RetryBaseDelay < 0 {
		return fmt.Errorf("%w: retry base delay must not be negative", contractx.ErrValidation)
	}
	return nil
}

func (c Config) provider() string {
	return strings.ToLower(strings.TrimSpace(c.Provider))
}

// AgentTypes lists every agent that gets its own generator.
func AgentTypes() []contractx.AgentType {
	return []contractx.AgentType{
		contractx.AgentTypeIntent,
		contractx.AgentTypeOrderTracking,
		contractx.AgentTypeProductRecommendation,
		contractx.AgentTypeCustomerSupport,
	}
}

// ModelFor returns the per-agent model override, or "" when the provider default applies.
func (c Config) ModelFor(agentType contractx.AgentType) string {
	switch agentType {
	case contractx.AgentTypeIntent:
		return strings.TrimSpace(c.IntentModel)
	case contractx.AgentTypeOrderTracking:
		return strings.TrimSpace(c.OrderModel)
	case contractx.AgentTypeProductRecommendation:
		return strings.TrimSpace(c.ProductModel)
	case contractx.AgentTypeCustomerSupport:
		return strings.TrimSpace(c.SupportModel)
	}
	return ""
}

func (c Config) OllamaFor(agentType contractx.AgentType) ollamax.Config {
	out := c.Ollama
	if m := c.ModelFor(agentType); m != "" {
		out.Model = m
	}
	return out
}

func (c Config) OpenRouterFor(agentType contractx.AgentType) openrouterx.Config {
	out := c.OpenRouter
	out.BaseURL = strings.TrimSpace(out.BaseURL)
	out.APIKey = strings.TrimSpace(out.APIKey)
	out.SiteURL = strings.TrimSpace(out.SiteURL)
	out.SiteName = strings.TrimSpace(out.SiteName)
	if m := c.ModelFor(agentType); m != "" {
		out.Model = m
	}
	return out
}

func (c Config) GeminiFor(agentType contractx.AgentType) geminix.Config {
	out := c.Gemini
	if m := c.ModelFor(agentType); m != "" {
		out.Model = m
	}
	return out
}

func (c Config) AnthropicFor(agentType contractx.AgentType) anthropicx.Config {
	out := c.Anthropic
	if m := c.ModelFor(agentType); m != "" {
		out.Model = m
	}
	return out
}
