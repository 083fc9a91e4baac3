// Package knowledge loads the support FAQ and answers substring lookups against it.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	"gopkg.in/yaml.v3"
)

// FAQ is an immutable list of question/answer pairs.
type FAQ struct {
	entries []contractx.FAQEntry
}

func NewFAQ(entries []contractx.FAQEntry) *FAQ {
	out := make([]contractx.FAQEntry, len(entries))
	copy(out, entries)
	return &FAQ{entries: out}
}

// LoadFAQ reads a .json, .yaml or .yml file. Any failure yields an empty FAQ.
func LoadFAQ(path string) *FAQ {
	entries, err := readFAQ(path)
	if err != nil {
		log.Warn().Err(err).Str("component", "knowledge").Str("path", path).Msg("faq unavailable, continuing without it")
		return &FAQ{}
	}
	return &FAQ{entries: entries}
}

func readFAQ(path string) ([]contractx.FAQEntry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("faq path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []contractx.FAQEntry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &entries)
	default:
		err = json.Unmarshal(raw, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("decode faq: %w", err)
	}
	return entries, nil
}

func (f *FAQ) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}

func (f *FAQ) Entries() []contractx.FAQEntry {
	if f == nil {
		return nil
	}
	out := make([]contractx.FAQEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Search returns the answer of the first entry whose question contains the
// whole lower-cased query.
func (f *FAQ) Search(query string) (string, bool) {
	if f == nil || len(f.entries) == 0 {
		return "", false
	}
	q := strings.ToLower(query)
	for _, e := range f.entries {
		if strings.Contains(strings.ToLower(e.Question), q) {
			return e.Answer, true
		}
	}
	return "", false
}

type Config struct {
	Path string `split_words:"true" default:"data/support_faq.json"`
}

// WriteFAQ stores entries as JSON, or YAML for .yaml/.yml paths.
func WriteFAQ(path string, entries []contractx.FAQEntry) error {
	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(entries)
	default:
		raw, err = json.MarshalIndent(entries, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode faq: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0o644)
}

// DemoEntries is the storefront FAQ written by `migrate --seed`.
func DemoEntries() []contractx.FAQEntry {
	return []contractx.FAQEntry{
		{ID: 1, Question: "How do I return an item?", Answer: "To return an item, go to your order history, select the order, and click 'Return Item'. Follow the instructions to print a return label. You have 30 days from the delivery date to initiate a return."},
		{ID: 2, Question: "When will I receive my refund?", Answer: "Refunds are processed within 3-5 business days after we receive your returned item. The funds may take an additional 2-7 business days to appear in your account depending on your payment method and financial institution."},
		{ID: 3, Question: "Can I change my shipping address?", Answer: "You can change your shipping address if your order hasn't been processed yet. Go to your order details and select 'Edit Shipping Information'. If your order has already been shipped, you'll need to contact customer support for assistance."},
		{ID: 4, Question: "Do you ship internationally?", Answer: "Yes, we ship to most countries worldwide. International shipping costs and delivery times vary by location. You can see the shipping options and costs during checkout before finalizing your purchase."},
		{ID: 5, Question: "How do I track my order?", Answer: "To track your order, log into your account, go to 'Order History', and select the order you want to track. Click on 'Track Package' to see the current status and estimated delivery date."},
	}
}
