package contact

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL contact repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Contact) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (user_id, address, phone)
		VALUES ($1, $2, $3) RETURNING id`,
		c.UserID, c.Address, c.Phone).Scan(&c.ID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]*Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, address, phone
		FROM contacts WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*Contact
	for rows.Next() {
		c := &Contact{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Address, &c.Phone); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *postgresRepo) GetForUser(ctx context.Context, id, userID int64) (*Contact, error) {
	c := &Contact{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, address, phone
		FROM contacts WHERE id=$1 AND user_id=$2`, id, userID).
		Scan(&c.ID, &c.UserID, &c.Address, &c.Phone)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) Update(ctx context.Context, c *Contact) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE contacts SET address=$1, phone=$2 WHERE id=$3 AND user_id=$4`,
		c.Address, c.Phone, c.ID, c.UserID)
	return err
}

func (r *postgresRepo) DeleteForUser(ctx context.Context, ids []int64, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE user_id=$1 AND id = ANY($2)`,
		userID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
