package catalog

import (
	"testing"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

func TestNameByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   int64
		want string
	}{
		{1, "Books"},
		{5, "Home Decor"},
		{6, "Beauty"},
		{0, Uncategorized},
		{99, Uncategorized},
	}
	for _, tt := range tests {
		if got := NameByID(tt.id); got != tt.want {
			t.Fatalf("NameByID(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestBySlug(t *testing.T) {
	t.Parallel()

	c, ok := BySlug(" Home-Decor ")
	if !ok || c.ID != 5 {
		t.Fatalf("BySlug(home-decor) = %+v, %v", c, ok)
	}
	if _, ok := BySlug("garden"); ok {
		t.Fatal("unexpected match for unknown slug")
	}
}

func TestCategoriesIsCopy(t *testing.T) {
	t.Parallel()

	got := Categories()
	got[0].Name = "changed"
	if NameByID(1) != "Books" {
		t.Fatal("Categories must not expose the shared table")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	p := Resolve(contractx.ProductRecord{ID: 7, Name: "Lamp", Price: 19.5, CategoryID: 42})
	if p.Category != Uncategorized || p.Name != "Lamp" || p.Price != 19.5 {
		t.Fatalf("Resolve() = %+v", p)
	}
}
