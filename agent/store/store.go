// Package store reads purchases and the product catalog through bun, on
// PostgreSQL or an embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	contractx "github.com/tanpawarit/Chative-Store-Assistant/agent/contract"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// SearchLimit caps keyword product matches.
	SearchLimit = 5
	// DefaultListLimit applies to browse queries without an explicit limit.
	DefaultListLimit = 1000
)

type Config struct {
	Driver       string        `split_words:"true" default:"sqlite"`
	DSN          string        `envconfig:"DSN" default:"file:storefront.db?cache=shared&_pragma=busy_timeout(5000)"`
	MaxOpenConns int           `split_words:"true" default:"4"`
	QueryTimeout time.Duration `split_words:"true" default:"5s"`
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unsupported store driver %q", contractx.ErrValidation, c.Driver)
	}
	if strings.TrimSpace(c.DSN) == "" {
		return fmt.Errorf("%w: store dsn is required", contractx.ErrValidation)
	}
	return nil
}

type Store struct {
	db           *bun.DB
	queryTimeout time.Duration
}

var (
	_ contractx.OrderStore   = (*Store)(nil)
	_ contractx.ProductStore = (*Store)(nil)
)

// Open connects to the configured database. The returned Store owns the pool.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var db *bun.DB
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		sqldb, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return New(db, cfg.QueryTimeout), nil
}

// New wraps an existing bun handle.
func New(db *bun.DB, queryTimeout time.Duration) *Store {
	return &Store{db: db, queryTimeout: queryTimeout}
}

func (s *Store) DB() *bun.DB { return s.db }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// PurchasesByUser returns the user's purchases, newest first, with their line items.
func (s *Store) PurchasesByUser(ctx context.Context, userID int64) ([]contractx.Purchase, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []purchaseModel
	err := s.db.NewSelect().
		Model(&rows).
		Relation("Items", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Where("p.user_id = ?", userID).
		Order("p.purchase_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: purchases for user %d: %w", contractx.ErrStoreQuery, userID, err)
	}

	out := make([]contractx.Purchase, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toContract())
	}
	return out, nil
}

// SearchProducts matches query as a case-insensitive substring of name or description.
func (s *Store) SearchProducts(ctx context.Context, query string, limit int) ([]contractx.ProductRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = SearchLimit
	}
	pattern := "%" + strings.ToLower(query) + "%"

	var rows []productModel
	err := s.db.NewSelect().
		Model(&rows).
		Where("LOWER(pr.name) LIKE ? OR LOWER(pr.description) LIKE ?", pattern, pattern).
		Order("pr.id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: search products: %w", contractx.ErrStoreQuery, err)
	}
	return productsToContract(rows), nil
}

// ListProducts applies browse criteria: categories, search, price bounds, sort and limit.
func (s *Store) ListProducts(ctx context.Context, q contractx.ProductQuery) ([]contractx.ProductRecord, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []productModel
	sel := s.db.NewSelect().Model(&rows)

	if len(q.CategoryIDs) > 0 {
		sel = sel.Where("pr.category_id IN (?)", bun.In(q.CategoryIDs))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		sel = sel.WhereGroup(" AND ", func(g *bun.SelectQuery) *bun.SelectQuery {
			return g.Where("LOWER(pr.name) LIKE ?", pattern).
				WhereOr("LOWER(pr.description) LIKE ?", pattern)
		})
	}
	if q.PriceMin != nil {
		sel = sel.Where("pr.price >= ?", *q.PriceMin)
	}
	if q.PriceMax != nil {
		sel = sel.Where("pr.price <= ?", *q.PriceMax)
	}

	switch q.Sort {
	case contractx.SortPriceAsc:
		sel = sel.Order("pr.price ASC", "pr.id ASC")
	case contractx.SortPriceDesc:
		sel = sel.Order("pr.price DESC", "pr.id ASC")
	case contractx.SortNewest:
		sel = sel.Order("pr.created_at DESC", "pr.id DESC")
	case contractx.SortRating:
		sel = sel.Order("pr.rating DESC", "pr.id ASC")
	default:
		sel = sel.Order("pr.id ASC")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if err := sel.Limit(limit).Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: list products: %w", contractx.ErrStoreQuery, err)
	}
	return productsToContract(rows), nil
}
