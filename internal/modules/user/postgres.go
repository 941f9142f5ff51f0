package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, u *User, tokenKey string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, type, active)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.Type).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO confirm_tokens (user_id, key) VALUES ($1, $2)`,
		u.ID, tokenKey)
	if err != nil {
		return fmt.Errorf("insert confirm token: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, type, active, created_at
		FROM users WHERE email = $1`, email))
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, type, active, created_at
		FROM users WHERE id = $1`, id))
}

func (r *postgresRepository) UpdateUser(ctx context.Context, u *User) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET email=$1, password_hash=$2, type=$3 WHERE id=$4`,
		u.Email, u.PasswordHash, u.Type, u.ID)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *postgresRepository) ConsumeConfirmToken(ctx context.Context, email, key string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var tokenID, userID int64
	err = tx.QueryRowContext(ctx, `
		SELECT t.id, t.user_id
		FROM confirm_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.email = $1 AND t.key = $2`, email, key).Scan(&tokenID, &userID)
	if err == sql.ErrNoRows {
		return ErrInvalidToken
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE users SET active=TRUE WHERE id=$1`, userID); err != nil {
		return fmt.Errorf("activate user: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM confirm_tokens WHERE id=$1`, tokenID); err != nil {
		return fmt.Errorf("delete confirm token: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepository) scanUser(row *sql.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Type, &u.Active, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
