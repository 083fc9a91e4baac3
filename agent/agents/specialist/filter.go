package specialist

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tanpawarit/Chative-Store-Assistant/agent/catalog"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

const filterAction = "filter"

var (
	priceCeilingPattern = regexp.MustCompile(`under\s+\$?(\d+)|less than\s+\$?(\d+)|below\s+\$?(\d+)|cheaper than\s+\$?(\d+)`)
	priceBandPattern    = regexp.MustCompile(`between\s+\$?(\d+)\s+and\s+\$?(\d+)`)
	punctuationPattern  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

type keywordRule struct {
	keywords []string
	value    string
}

// Evaluated in order; the first rule with a matching keyword wins.
var sortRules = []keywordRule{
	{keywords: []string{"cheap", "lowest price", "price low"}, value: contractx.SortPriceAsc},
	{keywords: []string{"expensive", "highest price", "price high"}, value: contractx.SortPriceDesc},
	{keywords: []string{"newest", "latest", "recent"}, value: contractx.SortNewest},
	{keywords: []string{"popular", "best rated", "top rated"}, value: contractx.SortRating},
}

var viewRules = []keywordRule{
	{keywords: []string{"compact", "list"}, value: contractx.ViewCompact},
	{keywords: []string{"grid", "tiles"}, value: contractx.ViewGrid},
}

var searchStopWords = toSet(
	// browsing verbs and price words
	"show", "display", "find", "looking", "for", "me", "want", "need", "products", "items",
	"under", "over", "between", "and", "less", "than", "more", "cheap", "expensive", "newest",
	"popular", "best", "below", "cheaper", "price", "latest", "recent", "rated",
	// greetings and filler
	"hello", "hey", "hiya", "please", "thanks", "thank", "you", "can", "could", "would",
	"what", "which", "have", "has", "any", "some", "the", "get", "with", "are", "there",
	"your", "something", "anything", "buy", "see", "like", "all", "just", "from",
)

// ExtractFilter derives a storefront filter command from the message text alone.
func ExtractFilter(message string) contractx.FilterCommand {
	text := strings.ToLower(message)
	cmd := contractx.FilterCommand{Action: filterAction}

	categoryTokens := map[string]struct{}{}
	for _, c := range catalog.Categories() {
		name := strings.ToLower(c.Name)
		if strings.Contains(text, name) {
			cmd.Categories = append(cmd.Categories, c.Slug)
			for _, tok := range strings.Fields(name) {
				categoryTokens[tok] = struct{}{}
			}
		}
	}

	if m := priceCeilingPattern.FindStringSubmatch(text); m != nil {
		for _, group := range m[1:] {
			if group == "" {
				continue
			}
			cmd.PriceRange = &[2]int{0, parseBound(group)}
			break
		}
	}
	if m := priceBandPattern.FindStringSubmatch(text); m != nil {
		cmd.PriceRange = &[2]int{parseBound(m[1]), parseBound(m[2])}
	}

	cmd.Sort = firstMatch(text, sortRules)

	var terms []string
	for _, word := range strings.Fields(text) {
		word = punctuationPattern.ReplaceAllString(word, "")
		if utf8.RuneCountInString(word) <= 2 || isDigits(word) {
			continue
		}
		if _, skip := searchStopWords[word]; skip {
			continue
		}
		if _, skip := categoryTokens[word]; skip {
			continue
		}
		terms = append(terms, word)
	}
	cmd.Search = strings.Join(terms, " ")

	cmd.View = firstMatch(text, viewRules)
	return cmd
}

// parseBound reads a run of ASCII digits, saturating at math.MaxInt.
func parseBound(digits string) int {
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	return n
}

func firstMatch(text string, rules []keywordRule) string {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.value
			}
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func toSet(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
