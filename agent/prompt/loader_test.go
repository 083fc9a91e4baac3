package prompt

import (
	"context"
	"strings"
	"testing"
)

func TestLoadPromptSetTrimmed(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	for name, v := range map[string]string{
		"intent":       set.Intent,
		"intent_user":  set.IntentUser,
		"order":        set.Order,
		"order_user":   set.OrderUser,
		"product":      set.Product,
		"product_user": set.ProductUser,
		"support":      set.Support,
		"support_user": set.SupportUser,
	} {
		if v == "" {
			t.Fatalf("%s prompt is empty", name)
		}
		if v != strings.TrimSpace(v) {
			t.Fatalf("%s prompt is not trimmed", name)
		}
	}
	if !strings.Contains(set.Intent, "product_search, order_status, customer_support, or general") {
		t.Fatal("intent prompt must enumerate every label")
	}
}

func TestRenderIntentUser(t *testing.T) {
	t.Parallel()

	got, err := Render(context.Background(), LoadPromptSet().IntentUser, map[string]any{"message": "Where is my order?"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Classify this message into one of the allowed categories: Where is my order?"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderSupportWithoutFAQ(t *testing.T) {
	t.Parallel()

	got, err := Render(context.Background(), LoadPromptSet().SupportUser, map[string]any{
		"message":     "my parcel is damaged",
		"faq_context": "",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "User support request: my parcel is damaged\n\nProvide a helpful customer support response." {
		t.Fatalf("Render() = %q", got)
	}
}
