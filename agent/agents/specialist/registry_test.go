package specialist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	qstashx "github.com/tanpawarit/Chative-Store-Assistant/pkg/qstash"
)

func TestNewRegistryRequiresModels(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(context.Background(), Dependencies{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("NewRegistry() error = %v, want ErrValidation", err)
	}
}

func TestNewRegistryWiresAgents(t *testing.T) {
	t.Parallel()

	order := &fakeGenerator{reply: "order"}
	product := &fakeGenerator{reply: "product"}
	support := &fakeGenerator{reply: "support"}

	reg, err := NewRegistry(context.Background(), Dependencies{
		Models:   fakeModels{order: order, product: product, support: support},
		Orders:   &fakeOrderStore{purchases: samplePurchases()},
		Products: &fakeProductStore{},
		Clock:    fixedClock,
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	ctx := context.Background()
	if got := reg.Orders().Process(ctx, 7, "orders").Message; got != "order" {
		t.Fatalf("orders agent replied %q", got)
	}
	if got := reg.Products().Process(ctx, 7, "lamp").Message; got != "product" {
		t.Fatalf("products agent replied %q", got)
	}
	if got := reg.Support().Process(ctx, 7, "help").Message; got != "support" {
		t.Fatalf("support agent replied %q", got)
	}
	if got := reg.OrderAgent().LookupOrders(ctx, 7); len(got) != 3 {
		t.Fatalf("LookupOrders() = %d orders", len(got))
	}
	if reg.ProductAgent() == nil {
		t.Fatal("ProductAgent() is nil")
	}
}

func TestQStashTicketsPublish(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	var gotTicket contractx.SupportTicket
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotTicket)
		_, _ = w.Write([]byte(`{"messageId":"msg_1"}`))
	}))
	t.Cleanup(srv.Close)

	client, err := qstashx.NewClient(qstashx.Config{URL: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	tickets := NewQStashTickets(client, "https://hooks.example.com/tickets")

	ticket := contractx.SupportTicket{TicketID: "t-1", UserID: 4, Message: "help"}
	if err := tickets.PublishTicket(context.Background(), ticket); err != nil {
		t.Fatalf("PublishTicket() error = %v", err)
	}
	if gotPath != "/v2/publish/https://hooks.example.com/tickets" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotTicket != ticket {
		t.Fatalf("ticket = %+v", gotTicket)
	}
}

func TestQStashTicketsPublishFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client, err := qstashx.NewClient(qstashx.Config{URL: srv.URL, Token: "tok"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	err = NewQStashTickets(client, "https://hooks.example.com/tickets").
		PublishTicket(context.Background(), contractx.SupportTicket{TicketID: "t-2"})
	if !errors.Is(err, contractx.ErrPublish) {
		t.Fatalf("PublishTicket() error = %v, want ErrPublish", err)
	}
}
