package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Account is one stored credential row. The email is the immutable key;
// only the full name and the digest ever change after registration.
type Account struct {
	Email          string
	FullName       string
	PasswordDigest string
	CreatedAt      int64
	UpdatedAt      int64
}

// Insert adds a new account inside a transaction. ErrDuplicateAccount when
// the email is already present; any other failure is wrapped as ErrStorage.
func (s *Store) Insert(ctx context.Context, email, fullName, digest string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	now := time.Now().UnixMilli()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (email, full_name, password_digest, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		email, fullName, digest, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}
		return fmt.Errorf("%w: insert: %w", ErrStorage, err)
	}
	return tx.Commit()
}

// Lookup returns the account matching both email and digest, or (nil, nil)
// when the pair does not match any row.
func (s *Store) Lookup(ctx context.Context, email, digest string) (*Account, error) {
	return s.scanOne(ctx,
		`SELECT email, full_name, password_digest, created_at, updated_at
		 FROM users WHERE email = ? AND password_digest = ?`, email, digest)
}

// GetByEmail returns the account for email, or (nil, nil) when absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.scanOne(ctx,
		`SELECT email, full_name, password_digest, created_at, updated_at
		 FROM users WHERE email = ?`, email)
}

// Update rewrites the full name and digest for email inside a transaction.
func (s *Store) Update(ctx context.Context, email, fullName, digest string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET full_name = ?, password_digest = ?, updated_at = ? WHERE email = ?`,
		fullName, digest, time.Now().UnixMilli(), email)
	if err != nil {
		return fmt.Errorf("%w: update: %w", ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: update: no account for %s", ErrStorage, email)
	}
	return tx.Commit()
}

// Delete removes the account for email inside a transaction. Deleting an
// absent account is not an error.
func (s *Store) Delete(ctx context.Context, email string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, email); err != nil {
		return fmt.Errorf("%w: delete: %w", ErrStorage, err)
	}
	return tx.Commit()
}

func (s *Store) scanOne(ctx context.Context, query string, args ...any) (*Account, error) {
	a := &Account{}
	err := s.DB.QueryRowContext(ctx, query, args...).
		Scan(&a.Email, &a.FullName, &a.PasswordDigest, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", ErrStorage, err)
	}
	return a, nil
}
