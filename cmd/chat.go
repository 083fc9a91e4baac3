package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/agents/specialist"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Route a single message and print the agent response as JSON",
	Example: `  storeassist chat "where is my order?" --user 1
  storeassist chat "show me electronics under $50"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		resp := a.orch.Route(cmd.Context(), contractx.ParseUserID(chatUser), strings.Join(args, " "))
		return printJSON(cmd, resp)
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders <userId>",
	Short: "Print a user's orders without classification or generation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		// Order lookup never generates text, so no model is wired.
		agent := specialist.NewOrderAgent(nil, store, promptx.LoadPromptSet(), nil)
		return printJSON(cmd, agent.LookupOrders(cmd.Context(), contractx.ParseUserID(args[0])))
	},
}

func init() {
	rootCmd.AddCommand(chatCmd, ordersCmd)
	chatCmd.Flags().StringVarP(&chatUser, "user", "u", "anonymous", "user id the message is sent as")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
