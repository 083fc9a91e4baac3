package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Store-Assistant/agent/nodes"
	logx "github.com/tanpawarit/Chative-Store-Assistant/pkg/logger"
	metricsx "github.com/tanpawarit/Chative-Store-Assistant/pkg/metrics"
)

// OrderLookup is implemented by order agents that can list orders without generating text.
type OrderLookup interface {
	LookupOrders(ctx context.Context, userID int64) []contractx.Order
}

// ProductBrowser is implemented by product agents that can list products by filter criteria.
type ProductBrowser interface {
	Browse(ctx context.Context, q contractx.ProductQuery) []contractx.Product
}

type Orchestrator struct {
	classifier contractx.Classifier
	agents     nodex.AgentTable
	orders     OrderLookup
	products   ProductBrowser
	metrics    *metricsx.Recorder

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

func New(
	classifier contractx.Classifier,
	registry contractx.Registry,
	metrics *metricsx.Recorder,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	if registry == nil {
		return nil, errors.New("agent registry is required")
	}

	o := &Orchestrator{
		classifier: classifier,
		agents:     nodex.NewAgentTable(registry),
		metrics:    metrics,
		now:        time.Now,
	}
	if lookup, ok := registry.Orders().(OrderLookup); ok {
		o.orders = lookup
	}
	if browser, ok := registry.Products().(ProductBrowser); ok {
		o.products = browser
	}

	graphRunner, err := o.compileRouteGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Route classifies message and returns the matching agent's response.
// It always returns a well-formed envelope.
func (o *Orchestrator) Route(ctx context.Context, userID int64, message string) contractx.AgentResponse {
	requestID := uuid.NewString()
	logger := logx.Component("orchestrator").With().
		Str("request_id", requestID).
		Int64("user_id", userID).
		Logger()

	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{
		RequestID: requestID,
		UserID:    userID,
		Message:   message,
	})
	if err != nil {
		logger.Error().Err(err).Msg("route failed")
		return contractx.AgentResponse{
			Message:   contractx.ApologyMessage,
			AgentType: contractx.AgentTypeGeneral,
		}
	}

	logger.Info().
		Str("intent", string(out.Intent)).
		Str("agent_type", string(out.Response.AgentType)).
		Dur("latency", o.now().UTC().Sub(out.StartedAt)).
		Msg("message routed")
	return out.Response
}

// LookupOrders returns the user's orders without classification or generation.
func (o *Orchestrator) LookupOrders(ctx context.Context, userID int64) []contractx.Order {
	if o.orders == nil {
		return []contractx.Order{}
	}
	return o.orders.LookupOrders(ctx, userID)
}

// Browse lists catalog products for the storefront listing.
func (o *Orchestrator) Browse(ctx context.Context, q contractx.ProductQuery) []contractx.Product {
	if o.products == nil {
		return []contractx.Product{}
	}
	return o.products.Browse(ctx, q)
}
