package store

import (
	"time"

	"github.com/uptrace/bun"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
)

type purchaseModel struct {
	bun.BaseModel `bun:"table:purchases,alias:p"`

	ID           int64                `bun:"id,pk,autoincrement"`
	UserID       int64                `bun:"user_id,notnull"`
	PurchaseDate time.Time            `bun:"purchase_date,notnull"`
	TotalAmount  float64              `bun:"total_amount,notnull"`
	Items        []*purchaseItemModel `bun:"rel:has-many,join:id=purchase_id"`
}

type purchaseItemModel struct {
	bun.BaseModel `bun:"table:purchase_items,alias:pi"`

	ID              int64   `bun:"id,pk,autoincrement"`
	PurchaseID      int64   `bun:"purchase_id,notnull"`
	ProductName     string  `bun:"product_name,notnull"`
	Quantity        int     `bun:"quantity,notnull"`
	PriceAtPurchase float64 `bun:"price_at_purchase,notnull"`
}

type productModel struct {
	bun.BaseModel `bun:"table:products,alias:pr"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Slug        string    `bun:"slug"`
	Description string    `bun:"description"`
	Price       float64   `bun:"price,notnull"`
	Rating      float64   `bun:"rating"`
	Stock       int       `bun:"stock"`
	CategoryID  int64     `bun:"category_id"`
	ImageURL    string    `bun:"image_url"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (m *purchaseModel) toContract() contractx.Purchase {
	out := contractx.Purchase{
		ID:           m.ID,
		UserID:       m.UserID,
		PurchaseDate: m.PurchaseDate,
		TotalAmount:  m.TotalAmount,
		Items:        make([]contractx.PurchaseItem, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		if it == nil {
			continue
		}
		out.Items = append(out.Items, contractx.PurchaseItem{
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		})
	}
	return out
}

func (m *productModel) toContract() contractx.ProductRecord {
	return contractx.ProductRecord{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Rating:      m.Rating,
		Stock:       m.Stock,
		CategoryID:  m.CategoryID,
		ImageURL:    m.ImageURL,
	}
}

func productsToContract(rows []productModel) []contractx.ProductRecord {
	out := make([]contractx.ProductRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toContract())
	}
	return out
}
