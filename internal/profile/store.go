package profile

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row mirrors the profiles table. One row per user, created lazily on first
// update.
type Row struct {
	UserID           pgtype.UUID
	FullName         pgtype.Text
	AvatarURL        pgtype.Text
	IsPremium        bool
	PremiumExpiresAt pgtype.Timestamptz
	BusinessName     pgtype.Text
	BusinessAddress  pgtype.Text
	BusinessPhone    pgtype.Text
	BusinessEmail    pgtype.Text
	UpdatedAt        pgtype.Timestamptz
}

// Store abstracts profile persistence.
type Store interface {
	ByUserID(ctx context.Context, userID pgtype.UUID) (Row, error)
	Upsert(ctx context.Context, row Row) (Row, error)
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	Pool *pgxpool.Pool
}

const profileColumns = `user_id, full_name, avatar_url, is_premium, premium_expires_at,
	business_name, business_address, business_phone, business_email, updated_at`

func scanProfile(row interface{ Scan(dest ...any) error }) (Row, error) {
	var p Row
	err := row.Scan(
		&p.UserID, &p.FullName, &p.AvatarURL, &p.IsPremium, &p.PremiumExpiresAt,
		&p.BusinessName, &p.BusinessAddress, &p.BusinessPhone, &p.BusinessEmail, &p.UpdatedAt,
	)
	return p, err
}

func (s PGStore) ByUserID(ctx context.Context, userID pgtype.UUID) (Row, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	return scanProfile(row)
}

func (s PGStore) Upsert(ctx context.Context, row Row) (Row, error) {
	out := s.Pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, full_name, avatar_url, business_name, business_address, business_phone, business_email, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			avatar_url = EXCLUDED.avatar_url,
			business_name = EXCLUDED.business_name,
			business_address = EXCLUDED.business_address,
			business_phone = EXCLUDED.business_phone,
			business_email = EXCLUDED.business_email,
			updated_at = now()
		RETURNING `+profileColumns,
		row.UserID, row.FullName, row.AvatarURL, row.BusinessName,
		row.BusinessAddress, row.BusinessPhone, row.BusinessEmail)
	return scanProfile(out)
}
