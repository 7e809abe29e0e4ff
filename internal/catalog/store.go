package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Row mirrors the products_services table.
type Row struct {
	ID           pgtype.UUID
	UserID       pgtype.UUID
	Name         string
	Type         string
	DefaultPrice pgtype.Float8
	Description  pgtype.Text
	Unit         pgtype.Text
	IsActive     bool
	CreatedAt    pgtype.Timestamptz
}

// ListFilter narrows List results.
type ListFilter struct {
	ActiveOnly bool
	Type       string
	Limit      int
	Offset     int
}

// Store abstracts saved item persistence.
type Store interface {
	Insert(ctx context.Context, row Row) (Row, error)
	ByID(ctx context.Context, userID, id pgtype.UUID) (Row, error)
	List(ctx context.Context, userID pgtype.UUID, filter ListFilter) ([]Row, int64, error)
	Update(ctx context.Context, row Row) (Row, error)
	Delete(ctx context.Context, userID, id pgtype.UUID) (int64, error)
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	Pool *pgxpool.Pool
}

const itemColumns = `id, user_id, name, type, default_price, description, unit, is_active, created_at`

func scanItem(row interface{ Scan(dest ...any) error }) (Row, error) {
	var item Row
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Type, &item.DefaultPrice,
		&item.Description, &item.Unit, &item.IsActive, &item.CreatedAt,
	)
	return item, err
}

func (s PGStore) Insert(ctx context.Context, row Row) (Row, error) {
	out := s.Pool.QueryRow(ctx, `
		INSERT INTO products_services (user_id, name, type, default_price, description, unit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+itemColumns,
		row.UserID, row.Name, row.Type, row.DefaultPrice, row.Description, row.Unit, row.IsActive)
	return scanItem(out)
}

func (s PGStore) ByID(ctx context.Context, userID, id pgtype.UUID) (Row, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM products_services WHERE id = $1 AND user_id = $2`, id, userID)
	return scanItem(row)
}

func (s PGStore) List(ctx context.Context, userID pgtype.UUID, filter ListFilter) ([]Row, int64, error) {
	where := `user_id = $1`
	args := []any{userID}
	if filter.ActiveOnly {
		where += ` AND is_active`
	}
	if filter.Type != "" {
		where += fmt.Sprintf(` AND type = $%d`, len(args)+1)
		args = append(args, filter.Type)
	}

	var total int64
	if err := s.Pool.QueryRow(ctx, `SELECT count(*) FROM products_services WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products_services WHERE %s ORDER BY name LIMIT $%d OFFSET $%d`,
		itemColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	out := make([]Row, 0, filter.Limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	return out, total, rows.Err()
}

func (s PGStore) Update(ctx context.Context, row Row) (Row, error) {
	out := s.Pool.QueryRow(ctx, `
		UPDATE products_services
		SET name = $3, type = $4, default_price = $5, description = $6, unit = $7, is_active = $8
		WHERE id = $1 AND user_id = $2
		RETURNING `+itemColumns,
		row.ID, row.UserID, row.Name, row.Type, row.DefaultPrice, row.Description, row.Unit, row.IsActive)
	return scanItem(out)
}

func (s PGStore) Delete(ctx context.Context, userID, id pgtype.UUID) (int64, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM products_services WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
