package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/knowledge"
	storex "github.com/tanpawarit/Chative-Store-Assistant/agent/store"
	configx "github.com/tanpawarit/Chative-Store-Assistant/pkg/config"
)

var (
	migrateSeed bool
	migrateFAQ  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the purchases, purchase_items and products tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("schema ready")

		if migrateSeed {
			if err := store.Seed(ctx, time.Now(), storex.DemoProducts, storex.DemoPurchases); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Info().
				Int("products", len(storex.DemoProducts)).
				Int("purchases", len(storex.DemoPurchases)).
				Msg("demo data seeded")
		}

		if migrateFAQ {
			faqCfg, err := configx.New[knowledge.Config]("FAQ")
			if err != nil {
				return fmt.Errorf("load faq config: %w", err)
			}
			if err := knowledge.WriteFAQ(faqCfg.Path, knowledge.DemoEntries()); err != nil {
				return fmt.Errorf("write faq: %w", err)
			}
			log.Info().Str("path", faqCfg.Path).Msg("demo faq written")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "insert demo products and purchases")
	migrateCmd.Flags().BoolVar(&migrateFAQ, "write-faq", false, "write the demo FAQ to FAQ_PATH")
}
