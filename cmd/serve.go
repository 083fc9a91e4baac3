package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/llm"
	"github.com/tanpawarit/Chative-Store-Assistant/api"
	configx "github.com/tanpawarit/Chative-Store-Assistant/pkg/config"
	openrouterx "github.com/tanpawarit/Chative-Store-Assistant/pkg/openrouter"
)

var (
	serveSkipPreflight bool
	serveShutdownGrace time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveSkipPreflight, "skip-preflight", false, "do not verify the OpenRouter model before serving")
	serveCmd.Flags().DurationVar(&serveShutdownGrace, "shutdown-grace", 10*time.Second, "time allowed for in-flight requests on shutdown")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpCfg, err := configx.New[api.Config]("HTTP")
	if err != nil {
		return fmt.Errorf("load http config: %w", err)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if !serveSkipPreflight {
		if err := preflight(ctx, a.llmCfg); err != nil {
			return err
		}
	}

	srv := api.NewServer(*httpCfg, a.orch, a.registry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// preflight checks that every OpenRouter model the agents use exists.
func preflight(ctx context.Context, cfg *llm.Config) error {
	if !strings.EqualFold(strings.TrimSpace(cfg.Provider), llm.ProviderOpenRouter) {
		return nil
	}

	client := openrouterx.NewClient(cfg.OpenRouter)
	seen := map[string]bool{}
	for _, agentType := range llm.AgentTypes() {
		name := cfg.OpenRouterFor(agentType).Model
		if seen[name] {
			continue
		}
		seen[name] = true

		checkCtx, cancel := context.WithTimeout(ctx, cfg.OpenRouter.Timeout)
		err := openrouterx.CheckModel(checkCtx, client, name)
		cancel()
		if err != nil {
			return err
		}
		log.Info().Str("model", name).Msg("openrouter model available")
	}
	return nil
}
