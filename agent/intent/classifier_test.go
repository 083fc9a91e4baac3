package intent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	cachex "github.com/tanpawarit/Chative-Store-Assistant/agent/cache"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	promptx "github.com/tanpawarit/Chative-Store-Assistant/agent/prompt"
)

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	calls   int
	prompts []string
	systems []string
}

func (f *fakeGenerator) Complete(_ context.Context, prompt, system string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	return f.reply
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}

func (failingCache) Set(context.Context, string, string) error { return errors.New("down") }

func TestParseReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reply string
		want  contractx.Intent
	}{
		{"order_status", contractx.IntentOrderStatus},
		{"  PRODUCT_SEARCH\n", contractx.IntentProductSearch},
		{"The category is customer_support.", contractx.IntentCustomerSupport},
		{"product_search or order_status", contractx.IntentOrderStatus},
		{"customer_support, maybe product_search", contractx.IntentProductSearch},
		{"general", contractx.IntentGeneral},
		{"", contractx.IntentGeneral},
		{"I'm not sure", contractx.IntentGeneral},
		{contractx.ApologyMessage, contractx.IntentGeneral},
	}

	for _, tt := range tests {
		if got := ParseReply(tt.reply); got != tt.want {
			t.Fatalf("ParseReply(%q) = %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestClassifyBuildsPrompt(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "order_status"}
	c := New(gen, promptx.LoadPromptSet())

	got := c.Classify(context.Background(), "Where is my order?")
	if got != contractx.IntentOrderStatus {
		t.Fatalf("Classify() = %q", got)
	}
	if gen.prompts[0] != "Classify this message into one of the allowed categories: Where is my order?" {
		t.Fatalf("prompt = %q", gen.prompts[0])
	}
	if !strings.Contains(gen.systems[0], "order_status") {
		t.Fatal("system prompt must list the categories")
	}
}

func TestClassifyApologyIsGeneral(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: contractx.ApologyMessage}
	c := New(gen, promptx.LoadPromptSet())
	if got := c.Classify(context.Background(), "hello"); got != contractx.IntentGeneral {
		t.Fatalf("Classify() = %q, want general", got)
	}
}

func TestClassifyCacheHitSkipsGenerator(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "product_search"}
	c := New(gen, promptx.LoadPromptSet(), WithCache(cachex.NewMemory(16, 0), "intent:"))

	for i := 0; i < 3; i++ {
		if got := c.Classify(context.Background(), "Show me LAPTOPS"); got != contractx.IntentProductSearch {
			t.Fatalf("run %d: Classify() = %q", i, got)
		}
	}
	// normalised variant also hits
	c.Classify(context.Background(), "  show me laptops ")

	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
}

func TestClassifyDoesNotCacheGeneral(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "general"}
	mem := cachex.NewMemory(16, 0)
	c := New(gen, promptx.LoadPromptSet(), WithCache(mem, "intent:"))

	c.Classify(context.Background(), "hello")
	c.Classify(context.Background(), "hello")

	if gen.calls != 2 {
		t.Fatalf("generator calls = %d, want 2", gen.calls)
	}
	if mem.Len() != 0 {
		t.Fatalf("cache size = %d, want 0", mem.Len())
	}
}

func TestClassifyCacheFailureFallsThrough(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{reply: "customer_support"}
	c := New(gen, promptx.LoadPromptSet(), WithCache(failingCache{}, "intent:"))

	if got := c.Classify(context.Background(), "I need a refund"); got != contractx.IntentCustomerSupport {
		t.Fatalf("Classify() = %q", got)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
}
