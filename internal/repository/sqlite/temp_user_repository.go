package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"signup-service/internal/domain"
	"signup-service/internal/repository"
)

const createTempUsersTable = `
CREATE TABLE IF NOT EXISTS temp_users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	token TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_temp_users_expires_at ON temp_users (expires_at);
`

type TempUserRepository struct {
	db *sql.DB
}

func NewTempUserRepository(db *sql.DB) repository.TempUserRepository {
	return &TempUserRepository{db: db}
}

func (r *TempUserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTempUsersTable); err != nil {
		return fmt.Errorf("create temp_users table: %w", err)
	}
	return nil
}

func (r *TempUserRepository) Create(ctx context.Context, tempUser *domain.TempUser) (int64, error) {
	if tempUser.CreatedAt.IsZero() {
		tempUser.CreatedAt = time.Now().UTC()
	}
	// DATETIME text ordering only holds if every stored value is UTC;
	// DeleteExpired compares against a UTC cutoff in SQL.
	tempUser.ExpiresAt = tempUser.ExpiresAt.UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO temp_users (token, email, first_name, last_name, password_hash, expires_at, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tempUser.Token,
		tempUser.Email,
		tempUser.FirstName,
		tempUser.LastName,
		tempUser.PasswordHash,
		tempUser.ExpiresAt,
		tempUser.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert temp user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("temp user last insert id: %w", err)
	}
	tempUser.ID = id
	return id, nil
}

func (r *TempUserRepository) GetByToken(ctx context.Context, token string) (*domain.TempUser, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, token, email, first_name, last_name, password_hash, expires_at, created_at
FROM temp_users
WHERE token = ?`,
		token,
	)
	return scanTempUser(row)
}

func (r *TempUserRepository) GetByEmail(ctx context.Context, email string) (*domain.TempUser, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, token, email, first_name, last_name, password_hash, expires_at, created_at
FROM temp_users
WHERE email = ?`,
		email,
	)
	return scanTempUser(row)
}

func (r *TempUserRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM temp_users WHERE token = ?`, token)
	if err != nil {
		return false, fmt.Errorf("delete temp user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("temp user rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *TempUserRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM temp_users WHERE expires_at < ?`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired temp users: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expired temp users rows affected: %w", err)
	}
	return affected, nil
}

func scanTempUser(row interface {
	Scan(dest ...any) error
}) (*domain.TempUser, error) {
	var tempUser domain.TempUser
	if err := row.Scan(
		&tempUser.ID,
		&tempUser.Token,
		&tempUser.Email,
		&tempUser.FirstName,
		&tempUser.LastName,
		&tempUser.PasswordHash,
		&tempUser.ExpiresAt,
		&tempUser.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan temp user: %w", err)
	}
	return &tempUser, nil
}
