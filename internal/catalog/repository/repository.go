// Package repository persists catalog products to PostgreSQL. The in-memory
// store remains the serving copy; the repository loads it at startup and is
// written through on every mutation.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/anshulpatil/catalog-search/internal/catalog"
	"github.com/anshulpatil/catalog-search/pkg/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id                  BIGINT PRIMARY KEY,
	title               TEXT NOT NULL,
	description         TEXT NOT NULL DEFAULT '',
	brand               TEXT NOT NULL DEFAULT '',
	category            TEXT NOT NULL DEFAULT '',
	price               DOUBLE PRECISION NOT NULL DEFAULT 0,
	mrp                 DOUBLE PRECISION NOT NULL DEFAULT 0,
	selling_price       DOUBLE PRECISION NOT NULL DEFAULT 0,
	currency            TEXT NOT NULL DEFAULT 'INR',
	rating              DOUBLE PRECISION NOT NULL DEFAULT 0,
	stock               INT NOT NULL DEFAULT 0,
	metadata            JSONB NOT NULL DEFAULT '{}',
	units_sold          INT NOT NULL DEFAULT 0,
	return_rate         DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count        INT NOT NULL DEFAULT 0,
	complaint_count     INT NOT NULL DEFAULT 0,
	discount_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_latest           BOOLEAN NOT NULL DEFAULT FALSE
)`

// Repository reads and writes products in PostgreSQL.
type Repository struct {
	db     *postgres.Client
	logger *slog.Logger
}

// New creates a Repository on the given client.
func New(db *postgres.Client) *Repository {
	return &Repository{
		db:     db,
		logger: slog.Default().With("component", "product-repository"),
	}
}

// Init creates the products table when it does not exist.
func (r *Repository) Init(ctx context.Context) error {
	if _, err := r.db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating products table: %w", err)
	}
	return nil
}

// LoadAll returns every persisted product, ordered by ID.
func (r *Repository) LoadAll(ctx context.Context) ([]*catalog.Product, error) {
	rows, err := r.db.DB.QueryContext(ctx, `
		SELECT id, title, description, brand, category,
		       price, mrp, selling_price, currency, rating, stock, metadata,
		       units_sold, return_rate, review_count, complaint_count,
		       discount_percentage, is_latest
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		var p catalog.Product
		var metadata []byte
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Brand, &p.Category,
			&p.Price, &p.MRP, &p.SellingPrice, &p.Currency, &p.Rating, &p.Stock, &metadata,
			&p.UnitsSold, &p.ReturnRate, &p.ReviewCount, &p.ComplaintCount,
			&p.DiscountPercentage, &p.IsLatest,
		); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
				r.logger.Warn("skipping malformed product metadata", "product_id", p.ID, "error", err)
				p.Metadata = map[string]string{}
			}
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}
	return products, nil
}

// Save upserts the product.
func (r *Repository) Save(ctx context.Context, p *catalog.Product) error {
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return fmt.Errorf("marshaling product metadata: %w", err)
	}
	return r.db.InTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (
				id, title, description, brand, category,
				price, mrp, selling_price, currency, rating, stock, metadata,
				units_sold, return_rate, review_count, complaint_count,
				discount_percentage, is_latest
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				brand = EXCLUDED.brand,
				category = EXCLUDED.category,
				price = EXCLUDED.price,
				mrp = EXCLUDED.mrp,
				selling_price = EXCLUDED.selling_price,
				currency = EXCLUDED.currency,
				rating = EXCLUDED.rating,
				stock = EXCLUDED.stock,
				metadata = EXCLUDED.metadata,
				units_sold = EXCLUDED.units_sold,
				return_rate = EXCLUDED.return_rate,
				review_count = EXCLUDED.review_count,
				complaint_count = EXCLUDED.complaint_count,
				discount_percentage = EXCLUDED.discount_percentage,
				is_latest = EXCLUDED.is_latest`,
			p.ID, p.Title, p.Description, p.Brand, p.Category,
			p.Price, p.MRP, p.SellingPrice, p.Currency, p.Rating, p.Stock, metadata,
			p.UnitsSold, p.ReturnRate, p.ReviewCount, p.ComplaintCount,
			p.DiscountPercentage, p.IsLatest,
		)
		return err
	})
}

// Delete removes the product row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	return nil
}
