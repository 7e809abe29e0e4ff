package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRow mirrors the users table.
type UserRow struct {
	ID           pgtype.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// SessionRow mirrors the refresh_tokens table.
type SessionRow struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	TokenHash string
	UserAgent pgtype.Text
	IP        pgtype.Text
	ExpiresAt pgtype.Timestamptz
	RevokedAt pgtype.Timestamptz
}

// Store abstracts user and session persistence so the service can be tested
// without a database.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (UserRow, error)
	UserByEmail(ctx context.Context, email string) (UserRow, error)
	UserByID(ctx context.Context, id pgtype.UUID) (UserRow, error)
	CreateSession(ctx context.Context, userID pgtype.UUID, tokenHash, userAgent, ip string, expiresAt time.Time) (SessionRow, error)
	SessionByTokenHash(ctx context.Context, tokenHash string) (SessionRow, error)
	RotateSession(ctx context.Context, id pgtype.UUID, tokenHash string, expiresAt time.Time) error
	RevokeSessionByTokenHash(ctx context.Context, tokenHash string) error
	RevokeSessionsByUser(ctx context.Context, userID pgtype.UUID) error
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	Pool *pgxpool.Pool
}

const userColumns = `id, name, email, password_hash, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (UserRow, error) {
	var u UserRow
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (s PGStore) CreateUser(ctx context.Context, name, email, passwordHash string) (UserRow, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		name, email, passwordHash)
	return scanUser(row)
}

func (s PGStore) UserByEmail(ctx context.Context, email string) (UserRow, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s PGStore) UserByID(ctx context.Context, id pgtype.UUID) (UserRow, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s PGStore) CreateSession(ctx context.Context, userID pgtype.UUID, tokenHash, userAgent, ip string, expiresAt time.Time) (SessionRow, error) {
	var sess SessionRow
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, user_agent, ip, expires_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		RETURNING id, user_id, token_hash, user_agent, ip, expires_at, revoked_at`,
		userID, tokenHash, userAgent, ip, expiresAt)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.TokenHash, &sess.UserAgent, &sess.IP, &sess.ExpiresAt, &sess.RevokedAt)
	return sess, err
}

func (s PGStore) SessionByTokenHash(ctx context.Context, tokenHash string) (SessionRow, error) {
	var sess SessionRow
	row := s.Pool.QueryRow(ctx, `
		SELECT id, user_id, token_hash, user_agent, ip, expires_at, revoked_at
		FROM refresh_tokens WHERE token_hash = $1`,
		tokenHash)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.TokenHash, &sess.UserAgent, &sess.IP, &sess.ExpiresAt, &sess.RevokedAt)
	return sess, err
}

func (s PGStore) RotateSession(ctx context.Context, id pgtype.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE refresh_tokens SET token_hash = $2, expires_at = $3 WHERE id = $1`,
		id, tokenHash, expiresAt)
	return err
}

func (s PGStore) RevokeSessionByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now() WHERE token_hash = $1 AND revoked_at IS NULL`,
		tokenHash)
	return err
}

func (s PGStore) RevokeSessionsByUser(ctx context.Context, userID pgtype.UUID) error {
	_, err := s.Pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now() WHERE user_id = $1 AND revoked_at IS NULL`,
		userID)
	return err
}
