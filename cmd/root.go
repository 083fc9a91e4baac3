// Package cmd wires configuration, storage and agents into the storeassist CLI.
package cmd

import (
	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Store-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Store-Assistant/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "storeassist",
	Short: "Store assistant that routes shopper messages to order, product and support agents",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return err
		}
		logx.Init(*logCfg)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to a .env file (defaults to ./.env when present)")
}

func Execute() error {
	return rootCmd.Execute()
}
