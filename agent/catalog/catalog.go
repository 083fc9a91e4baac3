// Package catalog holds the fixed storefront category table.
package catalog

import (
	"strings"

	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

const Uncategorized = "Uncategorized"

var categories = []contractx.Category{
	{ID: 1, Name: "Books", Slug: "books"},
	{ID: 2, Name: "Fashion", Slug: "fashion"},
	{ID: 3, Name: "Fitness", Slug: "fitness"},
	{ID: 4, Name: "Electronics", Slug: "electronics"},
	{ID: 5, Name: "Home Decor", Slug: "home-decor"},
	{ID: 6, Name: "Beauty", Slug: "beauty"},
}

// Categories returns a copy of the category table in id order.
func Categories() []contractx.Category {
	out := make([]contractx.Category, len(categories))
	copy(out, categories)
	return out
}

// NameByID resolves a category id to its display name, or Uncategorized.
func NameByID(id int64) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return Uncategorized
}

// BySlug looks up a category by slug, case-insensitively.
func BySlug(slug string) (contractx.Category, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return contractx.Category{}, false
}

// Names renders the category list as prompt bullet lines.
func Names() string {
	lines := make([]string, 0, len(categories))
	for _, c := range categories {
		lines = append(lines, "- "+c.Name)
	}
	return strings.Join(lines, "\n")
}

// Resolve turns a catalog row into the outward product shape.
func Resolve(rec contractx.ProductRecord) contractx.Product {
	return contractx.Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Category:    NameByID(rec.CategoryID),
		CategoryID:  rec.CategoryID,
		Price:       rec.Price,
		Description: rec.Description,
		Rating:      rec.Rating,
		Stock:       rec.Stock,
		ImageURL:    rec.ImageURL,
	}
}

func ResolveAll(recs []contractx.ProductRecord) []contractx.Product {
	out := make([]contractx.Product, 0, len(recs))
	for _, rec := range recs {
		out = append(out, Resolve(rec))
	}
	return out
}
