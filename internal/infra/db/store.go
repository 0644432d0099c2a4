package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vtex-storefront/internal/domain/model"
)

const productsTable = "catalog_products"

var productColumns = []string{
	"sku",
	"product_group_id",
	"name",
	"brand",
	"category",
	"url",
	"gtin",
	"low_price",
	"high_price",
	"currency",
	"availability",
	"payload",
	"updated_at",
}

type ProductStore interface {
	EnsureSchema(ctx context.Context) error
	Upsert(ctx context.Context, products []model.Product) error
}

type SQLProductStore struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
}

func NewProductStore(db *sql.DB, driver string) ProductStore {
	dialect := DriverMySQL
	if d := strings.ToLower(strings.TrimSpace(driver)); d == DriverPostgres || d == "postgresql" {
		dialect = DriverPostgres
	}
	return &SQLProductStore{
		db:      db,
		dialect: dialect,
		now:     time.Now,
	}
}

func (s *SQLProductStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery(s.dialect)); err != nil {
		return fmt.Errorf("create %s: %w", productsTable, err)
	}
	return nil
}

// Upsert writes products in one transaction, keyed by sku.
func (s *SQLProductStore) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertQuery(s.dialect))
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	updatedAt := s.now().UTC()
	for _, p := range products {
		args, err := productRow(p, updatedAt)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("upsert sku %s: %w", p.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func createTableQuery(dialect string) string {
	payloadType := "JSON"
	if dialect == DriverPostgres {
		payloadType = "JSONB"
	}
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sku VARCHAR(64) NOT NULL PRIMARY KEY,
	product_group_id VARCHAR(64) NOT NULL,
	name VARCHAR(512) NOT NULL,
	brand VARCHAR(255) NOT NULL,
	category VARCHAR(1024) NOT NULL,
	url VARCHAR(2048) NOT NULL,
	gtin VARCHAR(64) NOT NULL,
	low_price DECIMAL(12,2) NOT NULL,
	high_price DECIMAL(12,2) NOT NULL,
	currency VARCHAR(8) NOT NULL,
	availability VARCHAR(64) NOT NULL,
	payload %s NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`, productsTable, payloadType)
}

func upsertQuery(dialect string) string {
	placeholders := make([]string, len(productColumns))
	updates := make([]string, 0, len(productColumns)-1)
	for i, col := range productColumns {
		if dialect == DriverPostgres {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
		} else {
			placeholders[i] = "?"
		}
		if col == "sku" {
			continue
		}
		if dialect == DriverPostgres {
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		} else {
			updates = append(updates, fmt.Sprintf("%s = VALUES(%s)", col, col))
		}
	}

	conflict := "ON DUPLICATE KEY UPDATE"
	if dialect == DriverPostgres {
		conflict = "ON CONFLICT (sku) DO UPDATE SET"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s %s",
		productsTable,
		strings.Join(productColumns, ", "),
		strings.Join(placeholders, ", "),
		conflict,
		strings.Join(updates, ", "),
	)
}

// productRow flattens p in productColumns order. The full product is kept
// as json in payload.
func productRow(p model.Product, updatedAt time.Time) ([]any, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode sku %s: %w", p.SKU, err)
	}

	brand := ""
	if p.Brand != nil {
		brand = p.Brand.Name
	}
	var low, high float64
	currency := ""
	availability := model.OutOfStock
	if p.Offers != nil {
		low, high = p.Offers.LowPrice, p.Offers.HighPrice
		currency = p.Offers.PriceCurrency
		if len(p.Offers.Offers) > 0 {
			availability = p.Offers.Offers[0].Availability
		}
	}

	return []any{
		p.SKU,
		p.InProductGroupWithID,
		p.Name,
		brand,
		p.Category,
		p.URL,
		p.GTIN,
		low,
		high,
		currency,
		availability,
		string(payload),
		updatedAt,
	}, nil
}
