package seller

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL seller repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetByUser(ctx context.Context, userID int64) (*Seller, error) {
	s := &Seller{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, accepting_orders, catalog_url
		FROM sellers WHERE user_id=$1`, userID).
		Scan(&s.ID, &s.UserID, &s.Name, &s.AcceptingOrders, &s.CatalogURL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) ListAccepting(ctx context.Context) ([]*Seller, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, accepting_orders, catalog_url
		FROM sellers WHERE accepting_orders ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []*Seller
	for rows.Next() {
		s := &Seller{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.AcceptingOrders, &s.CatalogURL); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *postgresRepo) SetAcceptingOrders(ctx context.Context, userID int64, accepting bool) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sellers SET accepting_orders=$1 WHERE user_id=$2`,
		accepting, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
