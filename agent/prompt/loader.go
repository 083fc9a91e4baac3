package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

var (
	//go:embed template/intent.txt
	intentRaw string

	//go:embed template/intent_user.txt
	intentUserRaw string

	//go:embed template/order.txt
	orderRaw string

	//go:embed template/order_user.txt
	orderUserRaw string

	//go:embed template/product.txt
	productRaw string

	//go:embed template/product_user.txt
	productUserRaw string

	//go:embed template/support.txt
	supportRaw string

	//go:embed template/support_user.txt
	supportUserRaw string
)

// PromptSet holds the system prompt and user prompt template for each agent.
// User templates use {name} placeholders.
type PromptSet struct {
	Intent      string
	IntentUser  string
	Order       string
	OrderUser   string
	Product     string
	ProductUser string
	Support     string
	SupportUser string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Intent:      strings.TrimSpace(intentRaw),
		IntentUser:  strings.TrimSpace(intentUserRaw),
		Order:       strings.TrimSpace(orderRaw),
		OrderUser:   strings.TrimSpace(orderUserRaw),
		Product:     strings.TrimSpace(productRaw),
		ProductUser: strings.TrimSpace(productUserRaw),
		Support:     strings.TrimSpace(supportRaw),
		SupportUser: strings.TrimSpace(supportUserRaw),
	}
}

// Render fills a {name}-style template through eino's FString chat template.
func Render(ctx context.Context, tpl string, vars map[string]any) (string, error) {
	template := einoprompt.FromMessages(schema.FString, schema.UserMessage(tpl))
	msgs, err := template.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("render prompt: empty result")
	}
	return msgs[0].Content, nil
}
