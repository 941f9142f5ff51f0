package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetOrCreateBasket(ctx context.Context, userID int64) (*Order, error) {
	// The partial unique index on (user_id) WHERE state='basket' makes the
	// insert race-safe: the loser of a concurrent insert falls through to
	// the select.
	o := &Order{}
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, state) VALUES ($1, 'basket')
		ON CONFLICT DO NOTHING
		RETURNING id, user_id, state, created_at`, userID).
		Scan(&o.ID, &o.UserID, &o.State, &o.CreatedAt)
	if err == nil {
		return o, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("create basket: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, state, created_at
		FROM orders WHERE user_id=$1 AND state='basket'`, userID).
		Scan(&o.ID, &o.UserID, &o.State, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("load basket: %w", err)
	}
	return o, nil
}

func (r *postgresRepo) AddItems(ctx context.Context, orderID int64, items []AddItemRequest) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	created := 0
	for _, item := range items {
		// seller_id is denormalized from the listing at insert time.
		res, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_info_id, seller_id, quantity)
			SELECT $1, pi.id, pi.seller_id, $2
			FROM product_info pi WHERE pi.id=$3`,
			orderID, item.Quantity, item.ProductInfo)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return 0, ErrDuplicateItem
			}
			return 0, fmt.Errorf("insert order item: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductInfo)
		}
		created++
	}

	return created, tx.Commit()
}

func (r *postgresRepo) UpdateItemQuantities(ctx context.Context, orderID int64, items []UpdateItemRequest) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var updated int64
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `
			UPDATE order_items SET quantity=$1 WHERE id=$2 AND order_id=$3`,
			item.Quantity, item.ID, orderID)
		if err != nil {
			return 0, fmt.Errorf("update order item %d: %w", item.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		updated += n
	}

	return updated, tx.Commit()
}

func (r *postgresRepo) DeleteItems(ctx context.Context, orderID int64, ids []int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM order_items WHERE order_id=$1 AND id = ANY($2)`,
		orderID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64, basket bool) ([]*Order, error) {
	op := "<>"
	if basket {
		op = "="
	}
	return r.queryOrders(ctx, fmt.Sprintf(`
		SELECT id, user_id, contact_id, state, created_at
		FROM orders WHERE user_id=$1 AND state %s 'basket'
		ORDER BY created_at DESC`, op), userID)
}

func (r *postgresRepo) ListBySeller(ctx context.Context, sellerUserID int64) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT DISTINCT o.id, o.user_id, o.contact_id, o.state, o.created_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN sellers s ON s.id = oi.seller_id
		WHERE s.user_id=$1 AND o.state <> 'basket'
		ORDER BY o.created_at DESC`, sellerUserID)
}

func (r *postgresRepo) Place(ctx context.Context, userID, orderID, contactID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET contact_id=$1, state='new'
		WHERE id=$2 AND user_id=$3
		  AND EXISTS (SELECT 1 FROM contacts c WHERE c.id=$1 AND c.user_id=$3)`,
		contactID, orderID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return 0, ErrInvalidArguments
		}
		return 0, fmt.Errorf("place order: %w", err)
	}
	return res.RowsAffected()
}

func (r *postgresRepo) GetUserEmail(ctx context.Context, userID int64) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM users WHERE id=$1`, userID).Scan(&email)
	return email, err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	byID := map[int64]*Order{}
	for rows.Next() {
		o := &Order{Items: []*Item{}}
		var contactID sql.NullInt64
		if err := rows.Scan(&o.ID, &o.UserID, &contactID, &o.State, &o.CreatedAt); err != nil {
			return nil, err
		}
		if contactID.Valid {
			o.ContactID = &contactID.Int64
		}
		orders = append(orders, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if err := r.attachItems(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := r.attachTotals(ctx, byID, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) attachItems(ctx context.Context, byID map[int64]*Order, ids []int64) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_info_id, oi.seller_id, oi.quantity,
		       pi.name, p.name, c.name, pi.price
		FROM order_items oi
		JOIN product_info pi ON pi.id = oi.product_info_id
		JOIN products p ON p.id = pi.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductInfoID, &item.SellerID,
			&item.Quantity, &item.Model, &item.Product, &item.Category, &item.Price); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// attachTotals computes total_sum with a dedicated aggregate over
// order_items x product_info only. Joining it through the item/parameter
// listing queries would over-count on fan-out.
func (r *postgresRepo) attachTotals(ctx context.Context, byID map[int64]*Order, ids []int64) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.order_id, COALESCE(SUM(oi.quantity * pi.price), 0)
		FROM order_items oi
		JOIN product_info pi ON pi.id = oi.product_info_id
		WHERE oi.order_id = ANY($1)
		GROUP BY oi.order_id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, total int64
		if err := rows.Scan(&orderID, &total); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.TotalSum = total
		}
	}
	return rows.Err()
}
