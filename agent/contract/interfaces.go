package contract

import "context"

// Generator produces natural-language text. Implementations never fail: exhausted
// retries surface as ApologyMessage.
type Generator interface {
	Complete(ctx context.Context, prompt string, systemPrompt string) string
}

type Classifier interface {
	Classify(ctx context.Context, message string) Intent
}

type Agent interface {
	Process(ctx context.Context, userID int64, message string) AgentResponse
}

type Registry interface {
	Products() Agent
	Orders() Agent
	Support() Agent
}

type OrderStore interface {
	PurchasesByUser(ctx context.Context, userID int64) ([]Purchase, error)
}

type ProductStore interface {
	SearchProducts(ctx context.Context, query string, limit int) ([]ProductRecord, error)
	ListProducts(ctx context.Context, q ProductQuery) ([]ProductRecord, error)
}

type IntentCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

type TicketPublisher interface {
	PublishTicket(ctx context.Context, ticket SupportTicket) error
}
