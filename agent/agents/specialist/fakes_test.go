package specialist

import (
	"context"
	"errors"
	"sync"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	prompts []string
	systems []string
}

func (f *fakeGenerator) Complete(_ context.Context, prompt, system string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	return f.reply
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

type fakeOrderStore struct {
	purchases []contractx.Purchase
	err       error
}

func (f *fakeOrderStore) PurchasesByUser(_ context.Context, userID int64) ([]contractx.Purchase, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []contractx.Purchase
	for _, p := range f.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeProductStore struct {
	records   []contractx.ProductRecord
	err       error
	lastQuery string
	lastLimit int
	lastList  contractx.ProductQuery
}

func (f *fakeProductStore) SearchProducts(_ context.Context, query string, limit int) ([]contractx.ProductRecord, error) {
	f.lastQuery = query
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeProductStore) ListProducts(_ context.Context, q contractx.ProductQuery) ([]contractx.ProductRecord, error) {
	f.lastList = q
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeTickets struct {
	mu      sync.Mutex
	tickets []contractx.SupportTicket
	err     error
}

func (f *fakeTickets) PublishTicket(_ context.Context, t contractx.SupportTicket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets = append(f.tickets, t)
	return f.err
}

type fakeModels struct {
	order, product, support contractx.Generator
}

func (m fakeModels) Order() contractx.Generator   { return m.order }
func (m fakeModels) Product() contractx.Generator { return m.product }
func (m fakeModels) Support() contractx.Generator { return m.support }

var errStoreDown = errors.New("database is locked")
