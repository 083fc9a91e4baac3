package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/agents/orchestrator"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/agents/specialist"
	cachex "github.com/tanpawarit/Chative-Store-Assistant/agent/cache"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/intent"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/knowledge"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
	storex "github.com/tanpawarit/Chative-Store-Assistant/agent/store"
	configx "github.com/tanpawarit/Chative-Store-Assistant/pkg/config"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
	qstashx "github.com/tanpawarit/Chative-Store-Assistant/pkg/qstash"
)

// app owns every long-lived dependency of a running assistant.
type app struct {
	llmCfg   *llm.Config
	store    *storex.Store
	cache    contractx.IntentCache
	registry *prometheus.Registry
	orch     *orchestrator.Orchestrator
}

func openStore() (*storex.Store, error) {
	cfg, err := configx.New[storex.Config]("STORE")
	if err != nil {
		return nil, fmt.Errorf("load store config: %w", err)
	}
	return storex.Open(*cfg)
}

func newApp(ctx context.Context) (*app, error) {
	llmCfg, err := configx.New[llm.Config]("LLM")
	if err != nil {
		return nil, fmt.Errorf("load llm config: %w", err)
	}
	cacheCfg, err := configx.New[cachex.Config]("CACHE")
	if err != nil {
		return nil, fmt.Errorf("load cache config: %w", err)
	}
	qstashCfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, fmt.Errorf("load qstash config: %w", err)
	}
	faqCfg, err := configx.New[knowledge.Config]("FAQ")
	if err != nil {
		return nil, fmt.Errorf("load faq config: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metricsx.New(reg)

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	a := &app{llmCfg: llmCfg, store: store, registry: reg}

	models, err := llm.NewModels(ctx, *llmCfg, llm.WithMetrics(recorder))
	if err != nil {
		a.Close()
		return nil, err
	}

	cache, err := cachex.New(*cacheCfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.cache = cache

	prompts := promptx.LoadPromptSet()
	classifierOpts := []intent.Option{intent.WithMetrics(recorder)}
	if cache != nil {
		classifierOpts = append(classifierOpts, intent.WithCache(cache, cacheCfg.KeyPrefix))
	}
	classifier := intent.New(models.Intent(), prompts, classifierOpts...)

	var tickets contractx.TicketPublisher
	if qstashCfg.Enabled() {
		client, err := qstashx.NewClient(*qstashCfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create qstash client: %w", err)
		}
		tickets = specialist.NewQStashTickets(client, qstashCfg.Destination)
	}

	registry, err := specialist.NewRegistry(ctx, specialist.Dependencies{
		Models:   models,
		Orders:   store,
		Products: store,
		FAQ:      knowledge.LoadFAQ(faqCfg.Path),
		Tickets:  tickets,
		Prompts:  prompts,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	orch, err := orchestrator.New(classifier, registry, recorder)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.orch = orch

	log.Info().
		Str("component", "app").
		Str("provider", llmCfg.Provider).
		Str("cache", cacheCfg.Backend).
		Bool("tickets", tickets != nil).
		Msg("assistant ready")
	return a, nil
}

func (a *app) Close() {
	if closer, ok := a.cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close intent cache")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
}
