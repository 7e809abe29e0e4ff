package template

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row mirrors the receipt_templates table. Template ids are short slugs
// ("default", "minimalist"), not UUIDs.
type Row struct {
	ID          string
	Name        string
	Description pgtype.Text
	PreviewURL  pgtype.Text
	IsPremium   bool
	Price       float64
	CreatedAt   pgtype.Timestamptz
}

// PurchaseRow mirrors the user_templates table.
type PurchaseRow struct {
	ID          pgtype.UUID
	UserID      pgtype.UUID
	TemplateID  string
	PurchasedAt pgtype.Timestamptz
}

// Store abstracts template persistence.
type Store interface {
	All(ctx context.Context) ([]Row, error)
	ByID(ctx context.Context, id string) (Row, error)
	InsertPurchase(ctx context.Context, userID pgtype.UUID, templateID string) (PurchaseRow, error)
	Owned(ctx context.Context, userID pgtype.UUID, templateID string) (bool, error)
	OwnedIDs(ctx context.Context, userID pgtype.UUID) ([]string, error)
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	Pool *pgxpool.Pool
}

const templateColumns = `id, name, description, preview_url, is_premium, price, created_at`

func scanTemplate(row interface{ Scan(dest ...any) error }) (Row, error) {
	var tpl Row
	err := row.Scan(&tpl.ID, &tpl.Name, &tpl.Description, &tpl.PreviewURL, &tpl.IsPremium, &tpl.Price, &tpl.CreatedAt)
	return tpl, err
}

func (s PGStore) All(ctx context.Context) ([]Row, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+templateColumns+` FROM receipt_templates ORDER BY is_premium, price, id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, rows.Err()
}

func (s PGStore) ByID(ctx context.Context, id string) (Row, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM receipt_templates WHERE id = $1`, id)
	return scanTemplate(row)
}

func (s PGStore) InsertPurchase(ctx context.Context, userID pgtype.UUID, templateID string) (PurchaseRow, error) {
	var purchase PurchaseRow
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO user_templates (user_id, template_id) VALUES ($1, $2)
		RETURNING id, user_id, template_id, purchased_at`, userID, templateID).
		Scan(&purchase.ID, &purchase.UserID, &purchase.TemplateID, &purchase.PurchasedAt)
	return purchase, err
}

func (s PGStore) Owned(ctx context.Context, userID pgtype.UUID, templateID string) (bool, error) {
	var owned bool
	err := s.Pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_templates WHERE user_id = $1 AND template_id = $2)`,
		userID, templateID).Scan(&owned)
	return owned, err
}

func (s PGStore) OwnedIDs(ctx context.Context, userID pgtype.UUID) ([]string, error) {
	rows, err := s.Pool.Query(ctx, `SELECT template_id FROM user_templates WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned templates: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
