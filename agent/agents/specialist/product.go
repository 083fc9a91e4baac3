package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/tanpawarit/Chative-Store-Assistant/agent/catalog"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

const productSearchLimit = 5

// ProductContext renders matched products for the prompt, or "" when there are none.
func ProductContext(products []contractx.Product) string {
	if len(products) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Based on the query, these products might be relevant:\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s - $%.2f - %s\n", i+1, p.Name, p.Price, p.Category)
	}
	return b.String()
}

type ProductAgent struct {
	gen     contractx.Generator
	store   contractx.ProductStore
	system  string
	userTpl string
}

var _ contractx.Agent = (*ProductAgent)(nil)

func NewProductAgent(ctx context.Context, gen contractx.Generator, store contractx.ProductStore, prompts promptx.PromptSet) *ProductAgent {
	system, err := promptx.Render(ctx, prompts.Product, map[string]any{"categories": catalog.Names()})
	if err != nil {
		system = strings.ReplaceAll(prompts.Product, "{categories}", catalog.Names())
	}
	return &ProductAgent{
		gen:     gen,
		store:   store,
		system:  system,
		userTpl: prompts.ProductUser,
	}
}

// Search returns up to five products whose name or description contains query.
// Storage errors yield an empty list.
func (a *ProductAgent) Search(ctx context.Context, query string) []contractx.Product {
	if a.store == nil {
		return []contractx.Product{}
	}
	rows, err := a.store.SearchProducts(ctx, query, productSearchLimit)
	if err != nil {
		logger := agentLogger(contractx.AgentTypeProductRecommendation, 0)
		logger.Error().Err(err).Msg("product search failed")
		return []contractx.Product{}
	}
	return catalog.ResolveAll(rows)
}

// Browse lists products matching a filter command's criteria.
func (a *ProductAgent) Browse(ctx context.Context, q contractx.ProductQuery) []contractx.Product {
	if a.store == nil {
		return []contractx.Product{}
	}
	rows, err := a.store.ListProducts(ctx, q)
	if err != nil {
		logger := agentLogger(contractx.AgentTypeProductRecommendation, 0)
		logger.Error().Err(err).Msg("product browse failed")
		return []contractx.Product{}
	}
	return catalog.ResolveAll(rows)
}

func (a *ProductAgent) Process(ctx context.Context, userID int64, message string) contractx.AgentResponse {
	logger := agentLogger(contractx.AgentTypeProductRecommendation, userID)

	filter := ExtractFilter(message)
	shouldNavigate := filter.HasCriteria()
	products := a.Search(ctx, message)

	prompt, err := promptx.Render(ctx, a.userTpl, map[string]any{
		"message":         message,
		"product_context": ProductContext(products),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("product prompt render failed")
		prompt = "User: " + message + "\n\nAvailable products: " + ProductContext(products)
	}

	reply := a.gen.Complete(ctx, prompt, a.system)
	logger.Debug().
		Int("products", len(products)).
		Bool("should_navigate", shouldNavigate).
		Msg("product agent replied")

	resp := contractx.AgentResponse{
		Message:        reply,
		AgentType:      contractx.AgentTypeProductRecommendation,
		Products:       products,
		ShouldNavigate: shouldNavigate,
	}
	if shouldNavigate {
		resp.FilterCommand = &filter
	}
	return resp
}
