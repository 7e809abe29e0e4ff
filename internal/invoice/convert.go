package invoice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/resibilis/backend-resibilis/internal/receipt"
)

func toUUID(value string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(strings.TrimSpace(value)); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
}

func uuidString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}

func toText(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}

func textString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func convertRow(row Row) (Invoice, error) {
	var items []Item
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return Invoice{}, fmt.Errorf("unmarshal invoice items: %w", err)
		}
	}

	var downloadedAt *time.Time
	if row.DownloadedAt.Valid {
		at := row.DownloadedAt.Time
		downloadedAt = &at
	}
	var createdAt time.Time
	if row.CreatedAt.Valid {
		createdAt = row.CreatedAt.Time
	}

	return Invoice{
		ID:             uuidString(row.ID),
		ReceiptNumber:  row.ReceiptNumber,
		ReceiptType:    row.ReceiptType,
		CustomerName:   row.CustomerName,
		CustomerEmail:  textString(row.CustomerEmail),
		CustomerPhone:  textString(row.CustomerPhone),
		Items:          items,
		TaxPercent:     row.TaxPercent,
		DiscountType:   row.DiscountType,
		DiscountValue:  row.DiscountValue,
		Subtotal:       row.Subtotal,
		DiscountAmount: row.DiscountAmount,
		TaxAmount:      row.TaxAmount,
		Total:          row.Total,
		FormattedTotal: receipt.FormatAmount(row.Total, receipt.Currency(row.Currency)),
		Currency:       row.Currency,
		Notes:          textString(row.Notes),
		Dimension:      row.Dimension,
		TemplateID:     row.TemplateID,
		Status:         row.Status,
		DownloadedAt:   downloadedAt,
		CreatedAt:      createdAt,
	}, nil
}
