package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	"github.com/tanpawarit/Chative-Store-Assistant/agent/knowledge"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

// ModelSet hands each agent its own generator.
type ModelSet interface {
	Order() contractx.Generator
	Product() contractx.Generator
	Support() contractx.Generator
}

type Dependencies struct {
	Models   ModelSet
	Orders   contractx.OrderStore
	Products contractx.ProductStore
	FAQ      *knowledge.FAQ
	Tickets  contractx.TicketPublisher
	Prompts  promptx.PromptSet
	Clock    Clock
}

// Registry wires the three specialist agents.
type Registry struct {
	products *ProductAgent
	orders   *OrderAgent
	support  *SupportAgent
}

var _ contractx.Registry = (*Registry)(nil)

func (r *Registry) Products() contractx.Agent {
	return r.products
}

func (r *Registry) Orders() contractx.Agent {
	return r.orders
}

func (r *Registry) Support() contractx.Agent {
	return r.support
}

// OrderAgent exposes the concrete order agent for the direct orders path.
func (r *Registry) OrderAgent() *OrderAgent {
	return r.orders
}

// ProductAgent exposes the concrete product agent for the browse path.
func (r *Registry) ProductAgent() *ProductAgent {
	return r.products
}

func NewRegistry(ctx context.Context, deps Dependencies) (*Registry, error) {
	if deps.Models == nil {
		return nil, fmt.Errorf("%w: models are required", contractx.ErrValidation)
	}
	if deps.Prompts == (promptx.PromptSet{}) {
		deps.Prompts = promptx.LoadPromptSet()
	}
	faq := deps.FAQ
	if faq == nil {
		faq = knowledge.NewFAQ(nil)
	}

	return &Registry{
		products: NewProductAgent(ctx, deps.Models.Product(), deps.Products, deps.Prompts),
		orders:   NewOrderAgent(deps.Models.Order(), deps.Orders, deps.Prompts, deps.Clock),
		support:  NewSupportAgent(deps.Models.Support(), faq, deps.Tickets, deps.Prompts, deps.Clock),
	}, nil
}
