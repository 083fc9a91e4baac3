package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Migrate creates the purchases, purchase_items and products tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	models := []any{
		(*purchaseModel)(nil),
		(*purchaseItemModel)(nil),
		(*productModel)(nil),
	}
	for _, m := range models {
		if _, err := s.db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}

	if _, err := s.db.NewCreateIndex().
		Model((*purchaseModel)(nil)).
		Index("purchases_user_id_idx").
		IfNotExists().
		Column("user_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("create purchases index: %w", err)
	}
	if _, err := s.db.NewCreateIndex().
		Model((*purchaseItemModel)(nil)).
		Index("purchase_items_purchase_id_idx").
		IfNotExists().
		Column("purchase_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("create purchase_items index: %w", err)
	}
	return nil
}

// SeedProduct is one demo catalog row.
type SeedProduct struct {
	Name        string
	Description string
	Price       float64
	Rating      float64
	Stock       int
	CategoryID  int64
}

// SeedItem is one demo line item.
type SeedItem struct {
	ProductName string
	Quantity    int
	Price       float64
}

// SeedPurchase is one demo purchase placed Age before the seed time.
type SeedPurchase struct {
	UserID int64
	Age    time.Duration
	Items  []SeedItem
}

// DemoProducts is a small fixed catalog across every category.
var DemoProducts = []SeedProduct{
	{"The Pragmatic Programmer", "Classic book on software craftsmanship", 39.99, 4.8, 25, 1},
	{"Cozy Mystery Novel", "A light-hearted whodunit paperback", 12.5, 4.1, 40, 1},
	{"Classic Denim Jacket", "Vintage wash denim jacket for everyday wear", 79, 4.3, 15, 2},
	{"Running Shoes", "Lightweight running shoes with breathable mesh", 89.99, 4.6, 30, 3},
	{"Yoga Mat", "Non-slip fitness mat, 6mm thick", 24.99, 4.4, 60, 3},
	{"Wireless Earbuds", "Bluetooth earbuds with charging case", 49.99, 4.2, 80, 4},
	{"Premium Laptop", "14 inch ultralight laptop with long battery life", 1299.99, 4.7, 5, 4},
	{"Ceramic Table Lamp", "Warm light ceramic lamp for the living room", 45, 4.0, 12, 5},
	{"Hydrating Face Serum", "Daily serum with hyaluronic acid", 29.99, 4.5, 50, 6},
}

// DemoPurchases gives user 1 one order in each delivery state.
var DemoPurchases = []SeedPurchase{
	{UserID: 1, Age: 6 * time.Hour, Items: []SeedItem{{"Wireless Earbuds", 1, 49.99}, {"Yoga Mat", 2, 24.99}}},
	{UserID: 1, Age: 2 * 24 * time.Hour, Items: []SeedItem{{"Running Shoes", 1, 89.99}}},
	{UserID: 1, Age: 10 * 24 * time.Hour, Items: []SeedItem{{"The Pragmatic Programmer", 1, 39.99}}},
	{UserID: 2, Age: 4 * 24 * time.Hour, Items: []SeedItem{{"Ceramic Table Lamp", 1, 45}}},
}

// Seed inserts products and purchases in one transaction. Purchase dates are now minus Age.
func (s *Store) Seed(ctx context.Context, now time.Time, products []SeedProduct, purchases []SeedPurchase) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(products) > 0 {
			rows := make([]productModel, 0, len(products))
			for i, p := range products {
				rows = append(rows, productModel{
					Name:        p.Name,
					Slug:        slugify(p.Name),
					Description: p.Description,
					Price:       p.Price,
					Rating:      p.Rating,
					Stock:       p.Stock,
					CategoryID:  p.CategoryID,
					ImageURL:    fmt.Sprintf("/product-image-%d.jpg", i+1),
					CreatedAt:   now.Add(-time.Duration(len(products)-i) * time.Hour),
				})
			}
			if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
				return fmt.Errorf("insert products: %w", err)
			}
		}

		for _, p := range purchases {
			row := &purchaseModel{
				UserID:       p.UserID,
				PurchaseDate: now.Add(-p.Age),
			}
			for _, it := range p.Items {
				row.TotalAmount += it.Price * float64(it.Quantity)
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return fmt.Errorf("insert purchase: %w", err)
			}
			if len(p.Items) == 0 {
				continue
			}
			items := make([]purchaseItemModel, 0, len(p.Items))
			for _, it := range p.Items {
				items = append(items, purchaseItemModel{
					PurchaseID:      row.ID,
					ProductName:     it.ProductName,
					Quantity:        it.Quantity,
					PriceAtPurchase: it.Price,
				})
			}
			if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
				return fmt.Errorf("insert purchase items: %w", err)
			}
		}
		return nil
	})
}

func slugify(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}
