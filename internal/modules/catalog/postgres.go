package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ReplaceSellerCatalog runs the full-replace import inside one transaction.
func (r *postgresRepo) ReplaceSellerCatalog(ctx context.Context, userID int64, sourceURL string, doc *Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sellerID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO sellers (user_id, name, catalog_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET name=EXCLUDED.name, catalog_url=EXCLUDED.catalog_url
		RETURNING id`,
		userID, doc.Seller, sourceURL).Scan(&sellerID)
	if err != nil {
		return fmt.Errorf("upsert seller: %w", err)
	}

	for _, c := range doc.Categories {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name`,
			c.ID, c.Name)
		if err != nil {
			return fmt.Errorf("upsert category %d: %w", c.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO seller_categories (category_id, seller_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			c.ID, sellerID)
		if err != nil {
			return fmt.Errorf("link category %d: %w", c.ID, err)
		}
	}

	// Full replace: prior stock goes away, parameters cascade.
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM product_info WHERE seller_id=$1`, sellerID); err != nil {
		return fmt.Errorf("clear seller stock: %w", err)
	}

	for _, g := range doc.Goods {
		var productID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO products (name, category_id) VALUES ($1, $2)
			ON CONFLICT (name, category_id) DO UPDATE SET name=EXCLUDED.name
			RETURNING id`,
			g.Name, g.Category).Scan(&productID)
		if err != nil {
			return fmt.Errorf("upsert product %q: %w", g.Name, err)
		}

		var infoID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO product_info (name, product_id, seller_id, quantity, price, price_rrc, article)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			g.Model, productID, sellerID, g.Quantity, g.Price, g.PriceRRC, g.ID).Scan(&infoID)
		if err != nil {
			return fmt.Errorf("insert product info %q: %w", g.Name, err)
		}

		for name, value := range g.Parameters {
			var parameterID int64
			err = tx.QueryRowContext(ctx, `
				INSERT INTO parameters (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name=EXCLUDED.name
				RETURNING id`,
				name).Scan(&parameterID)
			if err != nil {
				return fmt.Errorf("upsert parameter %q: %w", name, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO product_parameters (product_info_id, parameter_id, value)
				VALUES ($1, $2, $3)`,
				infoID, parameterID, string(value))
			if err != nil {
				return fmt.Errorf("insert parameter %q: %w", name, err)
			}
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) ListOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error) {
	query := `
		SELECT pi.id, pi.name, p.name, c.name, s.name, s.id,
		       pi.quantity, pi.price, pi.price_rrc, pi.article
		FROM product_info pi
		JOIN products p ON p.id = pi.product_id
		JOIN categories c ON c.id = p.category_id
		JOIN sellers s ON s.id = pi.seller_id
		WHERE s.accepting_orders`
	args := []interface{}{}
	n := 1
	if filter.SellerID != 0 {
		query += fmt.Sprintf(` AND s.id=$%d`, n)
		args = append(args, filter.SellerID)
		n++
	}
	if filter.CategoryID != 0 {
		query += fmt.Sprintf(` AND c.id=$%d`, n)
		args = append(args, filter.CategoryID)
		n++
	}
	query += ` ORDER BY pi.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*Offer
	byID := map[int64]*Offer{}
	for rows.Next() {
		o := &Offer{}
		if err := rows.Scan(&o.ID, &o.Model, &o.Product, &o.Category, &o.Seller, &o.SellerID,
			&o.Quantity, &o.Price, &o.PriceRRC, &o.Article); err != nil {
			return nil, err
		}
		offers = append(offers, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return offers, nil
	}

	ids := make([]int64, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}

	// Parameters come from a second query, keeping one offer row per listing
	// regardless of how many parameters it has.
	prows, err := r.db.QueryContext(ctx, `
		SELECT pp.product_info_id, par.name, pp.value
		FROM product_parameters pp
		JOIN parameters par ON par.id = pp.parameter_id
		WHERE pp.product_info_id = ANY($1)
		ORDER BY pp.id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var infoID int64
		var p OfferParameter
		if err := prows.Scan(&infoID, &p.Name, &p.Value); err != nil {
			return nil, err
		}
		if o, ok := byID[infoID]; ok {
			o.Parameters = append(o.Parameters, p)
		}
	}
	return offers, prows.Err()
}
