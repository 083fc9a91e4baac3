package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	logx "github.com/tanpawarit/Chative-Store-Assistant/pkg/logger"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

type generationInput struct {
	Prompt       string
	SystemPrompt string
}

// Client turns a chat model into a Generator that retries with exponential
// backoff and answers with ApologyMessage once every attempt has failed.
type Client struct {
	runner      compose.Runnable[generationInput, string]
	name        string
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(context.Context, time.Duration) error
	metrics     *metricsx.Recorder
}

var _ contractx.Generator = (*Client)(nil)

type Option func(*Client)

func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.baseDelay = d
		}
	}
}

func WithName(name string) Option {
	return func(c *Client) { c.name = name }
}

func WithMetrics(rec *metricsx.Recorder) Option {
	return func(c *Client) { c.metrics = rec }
}

func NewClient(ctx context.Context, chatModel einomodel.BaseChatModel, opts ...Option) (*Client, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("%w: chat model is required", contractx.ErrValidation)
	}

	c := &Client{
		name:        "default",
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}

	runner, err := compileGenerationGraph(ctx, chatModel, c.name)
	if err != nil {
		return nil, err
	}
	c.runner = runner
	return c, nil
}

// Complete never returns an error: failures are retried and finally replaced by ApologyMessage.
func (c *Client) Complete(ctx context.Context, prompt string, systemPrompt string) string {
	logger := logx.Component("llm").With().Str("model_role", c.name).Logger()

	in := generationInput{Prompt: prompt, SystemPrompt: systemPrompt}
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		started := time.Now()
		out, err := c.runner.Invoke(ctx, in)
		if err == nil {
			c.metrics.IncAttempt(true)
			logger.Debug().
				Int("attempt", attempt).
				Dur("latency", time.Since(started)).
				Int("response_chars", len(out)).
				Msg("generation completed")
			return out
		}

		c.metrics.IncAttempt(false)
		logger.Warn().
			Err(fmt.Errorf("%w: %w", contractx.ErrModelInvoke, err)).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Msg("generation attempt failed")

		if attempt == c.maxAttempts {
			break
		}
		delay := c.baseDelay * time.Duration(1<<(attempt-1))
		if err := c.sleep(ctx, delay); err != nil {
			logger.Warn().Err(err).Msg("generation retry aborted")
			break
		}
	}

	c.metrics.IncExhausted()
	logger.Error().Int("max_attempts", c.maxAttempts).Msg("generation exhausted, returning apology")
	return contractx.ApologyMessage
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func compileGenerationGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
	name string,
) (compose.Runnable[generationInput, string], error) {
	graph := compose.NewGraph[generationInput, string]()

	if err := graph.AddLambdaNode("build_messages",
		compose.InvokableLambda(func(ctx context.Context, in generationInput) ([]*schema.Message, error) {
			messages := make([]*schema.Message, 0, 2)
			if strings.TrimSpace(in.SystemPrompt) != "" {
				messages = append(messages, schema.SystemMessage(in.SystemPrompt))
			}
			messages = append(messages, schema.UserMessage(in.Prompt))
			return messages, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node build_messages: %w", err)
	}

	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add node model: %w", err)
	}

	if err := graph.AddLambdaNode("extract_content",
		compose.InvokableLambda(func(ctx context.Context, msg *schema.Message) (string, error) {
			if msg == nil || strings.TrimSpace(msg.Content) == "" {
				return "", fmt.Errorf("%w: empty model response", contractx.ErrModelInvoke)
			}
			return msg.Content, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node extract_content: %w", err)
	}

	edges := [][2]string{
		{compose.START, "build_messages"},
		{"build_messages", "model"},
		{"model", "extract_content"},
		{"extract_content", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("llm.generate."+name))
	if err != nil {
		return nil, fmt.Errorf("compile generation graph: %w", err)
	}
	return runner, nil
}
