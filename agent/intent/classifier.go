// Package intent maps a free-text message to one of the storefront intents.
package intent

import (
	"context"
	"strings"

	cachex "github.com/tanpawarit/Chative-Store-Assistant/agent/cache"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
	logx "github.com/tanpawarit/Chative-Store-Assistant/pkg/logger"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
)

// replyPriority is the tie-break order used when a reply names several labels.
var replyPriority = []contractx.Intent{
	contractx.IntentOrderStatus,
	contractx.IntentProductSearch,
	contractx.IntentCustomerSupport,
}

type Classifier struct {
	gen       contractx.Generator
	system    string
	userTpl   string
	cache     contractx.IntentCache
	keyPrefix string
	metrics   *metricsx.Recorder
}

var _ contractx.Classifier = (*Classifier)(nil)

type Option func(*Classifier)

// WithCache enables caching of non-general intents. A nil cache is ignored.
func WithCache(cache contractx.IntentCache, keyPrefix string) Option {
	return func(c *Classifier) {
		c.cache = cache
		c.keyPrefix = keyPrefix
	}
}

func WithMetrics(rec *metricsx.Recorder) Option {
	return func(c *Classifier) { c.metrics = rec }
}

func New(gen contractx.Generator, prompts promptx.PromptSet, opts ...Option) *Classifier {
	c := &Classifier{
		gen:     gen,
		system:  prompts.Intent,
		userTpl: prompts.IntentUser,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Classifier) Classify(ctx context.Context, message string) contractx.Intent {
	logger := logx.Component("intent")

	var key string
	if c.cache != nil {
		key = cachex.Key(c.keyPrefix, message)
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Msg("intent cache lookup failed")
		}
		c.metrics.IncCache(ok)
		if ok {
			got := contractx.ParseIntent(cached)
			c.metrics.IncIntent(string(got))
			logger.Debug().Str("intent", string(got)).Bool("cached", true).Msg("intent classified")
			return got
		}
	}

	prompt, err := promptx.Render(ctx, c.userTpl, map[string]any{"message": message})
	if err != nil {
		logger.Warn().Err(err).Msg("intent prompt render failed, using raw template")
		prompt = "Classify this message into one of the allowed categories: " + message
	}

	reply := c.gen.Complete(ctx, prompt, c.system)
	got := ParseReply(reply)

	if c.cache != nil && got != contractx.IntentGeneral {
		if err := c.cache.Set(ctx, key, string(got)); err != nil {
			logger.Warn().Err(err).Msg("intent cache store failed")
		}
	}

	c.metrics.IncIntent(string(got))
	logger.Debug().Str("intent", string(got)).Str("reply", reply).Msg("intent classified")
	return got
}

// ParseReply lower-cases the model reply and returns the first label, by
// priority, contained in it. Replies naming no label are general.
func ParseReply(reply string) contractx.Intent {
	normalized := strings.ToLower(strings.TrimSpace(reply))
	for _, label := range replyPriority {
		if strings.Contains(normalized, string(label)) {
			return label
		}
	}
	return contractx.IntentGeneral
}
