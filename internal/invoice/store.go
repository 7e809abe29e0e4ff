package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row mirrors the invoices table. Items are stored as a JSONB snapshot so a
// receipt never changes after issue, even if the catalog does.
type Row struct {
	ID             pgtype.UUID
	UserID         pgtype.UUID
	ReceiptNumber  string
	ReceiptType    string
	CustomerName   string
	CustomerEmail  pgtype.Text
	CustomerPhone  pgtype.Text
	Items          []byte
	TaxPercent     float64
	DiscountType   string
	DiscountValue  float64
	Subtotal       float64
	DiscountAmount float64
	TaxAmount      float64
	Total          float64
	Currency       string
	Notes          pgtype.Text
	Dimension      string
	TemplateID     string
	Status         string
	DownloadedAt   pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
}

// ListFilter narrows List results.
type ListFilter struct {
	Status string
	Limit  int
	Offset int
}

// Store abstracts invoice persistence.
type Store interface {
	Insert(ctx context.Context, row Row) (Row, error)
	ByID(ctx context.Context, userID, id pgtype.UUID) (Row, error)
	List(ctx context.Context, userID pgtype.UUID, filter ListFilter) ([]Row, int64, error)
	SetStatus(ctx context.Context, userID, id pgtype.UUID, status string) (Row, error)
	MarkDownloaded(ctx context.Context, userID, id pgtype.UUID, at time.Time) (Row, error)
	Delete(ctx context.Context, userID, id pgtype.UUID) error
	LastReceiptNumber(ctx context.Context, userID pgtype.UUID, prefix string) (string, error)
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	Pool *pgxpool.Pool
}

const invoiceColumns = `id, user_id, receipt_number, receipt_type, customer_name, customer_email,
	customer_phone, items, tax_percent, discount_type, discount_value, subtotal,
	discount_amount, tax_amount, total_amount, currency, notes, dimension,
	template_id, status, downloaded_at, created_at`

func scanInvoice(row interface{ Scan(dest ...any) error }) (Row, error) {
	var inv Row
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.ReceiptNumber, &inv.ReceiptType, &inv.CustomerName,
		&inv.CustomerEmail, &inv.CustomerPhone, &inv.Items, &inv.TaxPercent,
		&inv.DiscountType, &inv.DiscountValue, &inv.Subtotal, &inv.DiscountAmount,
		&inv.TaxAmount, &inv.Total, &inv.Currency, &inv.Notes, &inv.Dimension,
		&inv.TemplateID, &inv.Status, &inv.DownloadedAt, &inv.CreatedAt,
	)
	return inv, err
}

func (s PGStore) Insert(ctx context.Context, row Row) (Row, error) {
	out := s.Pool.QueryRow(ctx, `
		INSERT INTO invoices (
			user_id, receipt_number, receipt_type, customer_name, customer_email,
			customer_phone, items, tax_percent, discount_type, discount_value,
			subtotal, discount_amount, tax_amount, total_amount, currency, notes,
			dimension, template_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING `+invoiceColumns,
		row.UserID, row.ReceiptNumber, row.ReceiptType, row.CustomerName, row.CustomerEmail,
		row.CustomerPhone, row.Items, row.TaxPercent, row.DiscountType, row.DiscountValue,
		row.Subtotal, row.DiscountAmount, row.TaxAmount, row.Total, row.Currency, row.Notes,
		row.Dimension, row.TemplateID, row.Status)
	return scanInvoice(out)
}

func (s PGStore) ByID(ctx context.Context, userID, id pgtype.UUID) (Row, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	return scanInvoice(row)
}

func (s PGStore) List(ctx context.Context, userID pgtype.UUID, filter ListFilter) ([]Row, int64, error) {
	where := `user_id = $1`
	args := []any{userID}
	if filter.Status != "" {
		where += ` AND status = $2`
		args = append(args, filter.Status)
	}

	var total int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM invoices WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0, filter.Limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, rows.Err()
}

func (s PGStore) SetStatus(ctx context.Context, userID, id pgtype.UUID, status string) (Row, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE invoices SET status = $3 WHERE id = $1 AND user_id = $2
		RETURNING `+invoiceColumns, id, userID, status)
	return scanInvoice(row)
}

func (s PGStore) MarkDownloaded(ctx context.Context, userID, id pgtype.UUID, at time.Time) (Row, error) {
	row := s.Pool.QueryRow(ctx, `
		UPDATE invoices SET downloaded_at = $3 WHERE id = $1 AND user_id = $2
		RETURNING `+invoiceColumns, id, userID, at)
	return scanInvoice(row)
}

func (s PGStore) Delete(ctx context.Context, userID, id pgtype.UUID) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

// LastReceiptNumber returns the highest receipt number issued for the prefix,
// or "" when none exist. The fixed-width NNNN suffix makes the lexicographic
// maximum the numeric maximum, so deleted receipts leave no reusable gaps.
func (s PGStore) LastReceiptNumber(ctx context.Context, userID pgtype.UUID, prefix string) (string, error) {
	var number string
	err := s.Pool.QueryRow(ctx, `
		SELECT receipt_number FROM invoices
		WHERE user_id = $1 AND receipt_number LIKE $2
		ORDER BY receipt_number DESC LIMIT 1`,
		userID, prefix+"%").Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return number, err
}

func marshalItems(items []Item) ([]byte, error) {
	return json.Marshal(items)
}
