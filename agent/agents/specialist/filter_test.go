package specialist

import (
	"math"
	"reflect"
	"testing"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

func TestExtractFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    contractx.FilterCommand
	}{
		{
			name:    "category with ceiling",
			message: "show me electronics under $50",
			want: contractx.FilterCommand{
				Action:     "filter",
				Categories: []string{"electronics"},
				PriceRange: &[2]int{0, 50},
			},
		},
		{
			name:    "greeting carries nothing",
			message: "hello",
			want:    contractx.FilterCommand{Action: "filter"},
		},
		{
			name:    "band overrides ceiling",
			message: "under 100 or between 20 and 40",
			want: contractx.FilterCommand{
				Action:     "filter",
				PriceRange: &[2]int{20, 40},
			},
		},
		{
			name:    "multi word category",
			message: "Home Decor please",
			want: contractx.FilterCommand{
				Action:     "filter",
				Categories: []string{"home-decor"},
			},
		},
		{
			name:    "cheap beats newest",
			message: "newest cheap shoes",
			want: contractx.FilterCommand{
				Action: "filter",
				Sort:   contractx.SortPriceAsc,
				Search: "shoes",
			},
		},
		{
			name:    "top rated in grid",
			message: "top rated headphones in a grid",
			want: contractx.FilterCommand{
				Action: "filter",
				Sort:   contractx.SortRating,
				Search: "top headphones grid",
				View:   contractx.ViewGrid,
			},
		},
		{
			name:    "compact list view",
			message: "list yoga mats",
			want: contractx.FilterCommand{
				Action: "filter",
				Search: "list yoga mats",
				View:   contractx.ViewCompact,
			},
		},
		{
			name:    "punctuation stripped from terms",
			message: "wireless earbuds!",
			want: contractx.FilterCommand{
				Action: "filter",
				Search: "wireless earbuds",
			},
		},
		{
			name:    "accented terms kept whole",
			message: "café crème sérum in grid",
			want: contractx.FilterCommand{
				Action: "filter",
				Search: "café crème sérum grid",
				View:   contractx.ViewGrid,
			},
		},
		{
			name:    "two letter accented word dropped",
			message: "ça shoes",
			want: contractx.FilterCommand{
				Action: "filter",
				Search: "shoes",
			},
		},
		{
			name:    "oversized ceiling saturates",
			message: "under $99999999999999999999 shoes",
			want: contractx.FilterCommand{
				Action:     "filter",
				PriceRange: &[2]int{0, math.MaxInt},
				Search:     "shoes",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExtractFilter(tt.message)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractFilter(%q) =\n%+v\nwant\n%+v", tt.message, got, tt.want)
			}
		})
	}
}

func TestExtractFilterCeilingVariants(t *testing.T) {
	t.Parallel()

	for _, msg := range []string{"less than 30", "below $30", "cheaper than 30"} {
		got := ExtractFilter(msg)
		if got.PriceRange == nil || *got.PriceRange != [2]int{0, 30} {
			t.Fatalf("ExtractFilter(%q).PriceRange = %v", msg, got.PriceRange)
		}
	}
}

func TestExtractFilterSearchNeverHoldsStopWords(t *testing.T) {
	t.Parallel()

	got := ExtractFilter("can you show me the best products for fitness")
	if got.Search != "" {
		t.Fatalf("search = %q, want empty", got.Search)
	}
	if !reflect.DeepEqual(got.Categories, []string{"fitness"}) {
		t.Fatalf("categories = %v", got.Categories)
	}
}
