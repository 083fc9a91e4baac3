package contract

import (
	"strings"
	"time"
)

// Intent is the closed set of labels the classifier can produce.
type Intent string

const (
	IntentProductSearch   Intent = "product_search"
	IntentOrderStatus     Intent = "order_status"
	IntentCustomerSupport Intent = "customer_support"
	IntentGeneral         Intent = "general"
)

// ParseIntent maps a stored label back to an Intent. Unknown labels are general.
func ParseIntent(raw string) Intent {
	switch Intent(strings.TrimSpace(strings.ToLower(raw))) {
	case IntentProductSearch:
		return IntentProductSearch
	case IntentOrderStatus:
		return IntentOrderStatus
	case IntentCustomerSupport:
		return IntentCustomerSupport
	default:
		return IntentGeneral
	}
}

type AgentType string

const (
	AgentTypeIntent                AgentType = "intent"
	AgentTypeOrderTracking         AgentType = "order_tracking"
	AgentTypeProductRecommendation AgentType = "product_recommendation"
	AgentTypeCustomerSupport       AgentType = "customer_support"
	AgentTypeGeneral               AgentType = "general"
)

type OrderStatus string

const (
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

type OrderItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	OrderID           int64       `json:"order_id"`
	Date              string      `json:"date"`
	FormattedDate     string      `json:"formatted_date"`
	Total             float64     `json:"total"`
	Status            OrderStatus `json:"status"`
	Items             []OrderItem `json:"items"`
	ItemsCount        int         `json:"items_count"`
	EstimatedDelivery string      `json:"estimated_delivery"`
}

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CategoryID  int64   `json:"category_id,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// Sort orders understood by the storefront product listing.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortRating    = "rating"
)

const (
	ViewCompact = "compact"
	ViewGrid    = "grid"
)

// FilterCommand is the browsing directive the storefront applies to its product listing.
type FilterCommand struct {
	Action     string   `json:"action"`
	Categories []string `json:"categories,omitempty"`
	PriceRange *[2]int  `json:"priceRange,omitempty"`
	Sort       string   `json:"sort,omitempty"`
	Search     string   `json:"search,omitempty"`
	View       string   `json:"view,omitempty"`
}

// HasCriteria reports whether the command carries anything beyond the action key.
func (f FilterCommand) HasCriteria() bool {
	return len(f.Categories) > 0 ||
		f.PriceRange != nil ||
		f.Sort != "" ||
		f.Search != "" ||
		f.View != ""
}

// ProductQuery drives the product listing endpoint.
type ProductQuery struct {
	CategoryIDs []int64
	Search      string
	PriceMin    *float64
	PriceMax    *float64
	Sort        string
	Limit       int
}

type FAQEntry struct {
	ID       int    `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SupportTicket is emitted for every customer support request when a publisher is configured.
type SupportTicket struct {
	TicketID   string `json:"ticket_id"`
	UserID     int64  `json:"user_id"`
	Message    string `json:"message"`
	FAQMatched bool   `json:"faq_matched"`
	CreatedAt  string `json:"created_at"`
}

// Purchase is a stored purchase record with its line items.
type Purchase struct {
	ID           int64
	UserID       int64
	PurchaseDate time.Time
	TotalAmount  float64
	Items        []PurchaseItem
}

type PurchaseItem struct {
	ProductName     string
	Quantity        int
	PriceAtPurchase float64
}

// ProductRecord is a catalog row before its category is resolved.
type ProductRecord struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Rating      float64
	Stock       int
	CategoryID  int64
	ImageURL    string
}
