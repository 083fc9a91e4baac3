package specialist

import (
	"context"
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

const (
	shippedAfter   = 24 * time.Hour
	deliveredAfter = 3 * 24 * time.Hour
	deliveryWindow = 5 * 24 * time.Hour

	orderDateLayout          = "Jan 02, 2006"
	orderFormattedDateLayout = "January 02, 2006"
	estimatedDeliveryLayout  = "Jan 02"

	noOrdersContext = "No orders found for this user."
)

var orderSuggestedActions = []string{"View all orders in my account", "Track my latest order"}

// DeriveStatus maps the time elapsed since purchase to a delivery status.
func DeriveStatus(elapsed time.Duration) contractx.OrderStatus {
	switch {
	case elapsed < shippedAfter:
		return contractx.OrderProcessing
	case elapsed < deliveredAfter:
		return contractx.OrderShipped
	default:
		return contractx.OrderDelivered
	}
}

// BuildOrder derives the outward order view of a purchase at instant now.
func BuildOrder(p contractx.Purchase, now time.Time) contractx.Order {
	status := DeriveStatus(now.Sub(p.PurchaseDate))

	estimated := string(contractx.OrderDelivered)
	if status != contractx.OrderDelivered {
		estimated = p.PurchaseDate.Add(deliveryWindow).Format(estimatedDeliveryLayout)
	}

	items := make([]contractx.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, contractx.OrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.PriceAtPurchase,
		})
	}

	return contractx.Order{
		OrderID:           p.ID,
		Date:              p.PurchaseDate.Format(orderDateLayout),
		FormattedDate:     p.PurchaseDate.Format(orderFormattedDateLayout),
		Total:             p.TotalAmount,
		Status:            status,
		Items:             items,
		ItemsCount:        len(items),
		EstimatedDelivery: estimated,
	}
}

// OrderContext renders orders as the numbered block embedded in the prompt.
func OrderContext(orders []contractx.Order) string {
	if len(orders) == 0 {
		return noOrdersContext
	}

	var b strings.Builder
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. Order #%d - Status: %s - Placed on: %s\n", i+1, o.OrderID, o.Status, o.FormattedDate)
		fmt.Fprintf(&b, "   Total: $%.2f\n", o.Total)

		parts := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			parts = append(parts, fmt.Sprintf("%s (x%d)", it.ProductName, it.Quantity))
		}
		fmt.Fprintf(&b, "   Items: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}

type OrderAgent struct {
	gen     contractx.Generator
	store   contractx.OrderStore
	system  string
	userTpl string
	clock   Clock
}

var _ contractx.Agent = (*OrderAgent)(nil)

func NewOrderAgent(gen contractx.Generator, store contractx.OrderStore, prompts promptx.PromptSet, clock Clock) *OrderAgent {
	return &OrderAgent{
		gen:     gen,
		store:   store,
		system:  prompts.Order,
		userTpl: prompts.OrderUser,
		clock:   clock,
	}
}

// LookupOrders returns the user's orders newest first. Storage errors yield an empty list.
func (a *OrderAgent) LookupOrders(ctx context.Context, userID int64) []contractx.Order {
	logger := agentLogger(contractx.AgentTypeOrderTracking, userID)
	if a.store == nil {
		return []contractx.Order{}
	}

	purchases, err := a.store.PurchasesByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msg("order lookup failed")
		return []contractx.Order{}
	}

	now := a.clock.now()
	orders := make([]contractx.Order, 0, len(purchases))
	for _, p := range purchases {
		orders = append(orders, BuildOrder(p, now))
	}
	return orders
}

func (a *OrderAgent) Process(ctx context.Context, userID int64, message string) contractx.AgentResponse {
	logger := agentLogger(contractx.AgentTypeOrderTracking, userID)
	orders := a.LookupOrders(ctx, userID)

	prompt, err := promptx.Render(ctx, a.userTpl, map[string]any{
		"message":       message,
		"order_context": OrderContext(orders),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("order prompt render failed")
		prompt = "User: " + message + "\n\nOrder information:\n" + OrderContext(orders)
	}

	reply := a.gen.Complete(ctx, prompt, a.system)
	logger.Debug().Int("orders", len(orders)).Msg("order agent replied")

	return contractx.AgentResponse{
		Message:          reply,
		AgentType:        contractx.AgentTypeOrderTracking,
		Orders:           orders,
		SuggestedActions: append([]string(nil), orderSuggestedActions...),
	}
}
