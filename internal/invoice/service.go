// Package invoice implements receipt issuing and history: totals are computed
// once at creation through the receipt engine and persisted as an immutable
// snapshot alongside the line items.
package invoice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/events"
	"github.com/resibilis/backend-resibilis/internal/obs"
	"github.com/resibilis/backend-resibilis/internal/receipt"
)

var errNotFound = pgx.ErrNoRows

// Status values an invoice moves through.
const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
	StatusVoid      = "void"
)

const receiptNumberAttempts = 3

// Item is one line on a receipt. Quantities support fractional units (hours,
// kilos); caps match what the receipt layouts can render.
type Item struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Qty   float64 `json:"qty" validate:"gt=0,lte=99999"`
	Price float64 `json:"price" validate:"gte=0,lte=99999999.99"`
	Unit  string  `json:"unit,omitempty" validate:"max=20"`
}

// CreateInput carries a new receipt request.
type CreateInput struct {
	ReceiptType   string  `json:"receipt_type" validate:"omitempty,oneof=product service"`
	CustomerName  string  `json:"customer_name" validate:"required,max=200"`
	CustomerEmail string  `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string  `json:"customer_phone" validate:"omitempty,max=32"`
	Items         []Item  `json:"items" validate:"required,min=1,max=50,dive"`
	TaxPercent    float64 `json:"tax_percent" validate:"gte=0,lte=100"`
	DiscountType  string  `json:"discount_type" validate:"omitempty,oneof=flat percentage"`
	DiscountValue float64 `json:"discount_value" validate:"gte=0"`
	Currency      string  `json:"currency" validate:"omitempty,oneof=PHP USD"`
	Notes         string  `json:"notes" validate:"max=1000"`
	Dimension     string  `json:"dimension" validate:"omitempty,oneof=a4 a5 thermal-80mm thermal-58mm letter"`
	TemplateID    string  `json:"template_id" validate:"omitempty,max=64"`
	Status        string  `json:"status" validate:"omitempty,oneof=draft completed"`
}

// Invoice is the API representation of a stored receipt.
type Invoice struct {
	ID             string     `json:"id"`
	ReceiptNumber  string     `json:"receipt_number"`
	ReceiptType    string     `json:"receipt_type"`
	CustomerName   string     `json:"customer_name"`
	CustomerEmail  string     `json:"customer_email,omitempty"`
	CustomerPhone  string     `json:"customer_phone,omitempty"`
	Items          []Item     `json:"items"`
	TaxPercent     float64    `json:"tax_percent"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	Subtotal       float64    `json:"subtotal"`
	DiscountAmount float64    `json:"discount_amount"`
	TaxAmount      float64    `json:"tax_amount"`
	Total          float64    `json:"total"`
	FormattedTotal string     `json:"formatted_total"`
	Currency       string     `json:"currency"`
	Notes          string     `json:"notes,omitempty"`
	Dimension      string     `json:"dimension"`
	TemplateID     string     `json:"template_id"`
	Status         string     `json:"status"`
	DownloadedAt   *time.Time `json:"downloaded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TemplateGate answers whether a user may render with a given template.
type TemplateGate interface {
	EnsureUsable(ctx context.Context, userID, templateID string) error
}

// EmailEnqueuer hands finished receipts to the delivery queue.
type EmailEnqueuer interface {
	EnqueueReceiptEmail(ctx context.Context, invoiceID, userID, to string) error
}

// Service coordinates validation, total calculation, and persistence.
type Service struct {
	Store     Store
	Validate  *validator.Validate
	Templates TemplateGate
	Events    events.Publisher
	Emails    EmailEnqueuer
	Now       func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Preview computes the totals for a candidate receipt without persisting it.
func (s *Service) Preview(ctx context.Context, input CreateInput) (receipt.Calculation, error) {
	normalizeInput(&input)
	if err := s.validateInput(input); err != nil {
		return receipt.Calculation{}, err
	}
	calc, err := s.compute(input)
	if err != nil {
		return receipt.Calculation{}, err
	}
	obs.ObserveCalculatorCheck("ok")
	return calc, nil
}

// Create validates, numbers, computes, and stores a receipt, then emits
// invoice.created for the realtime list.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (Invoice, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Invoice{}, common.ErrUnauthorized("unauthorized")
	}
	normalizeInput(&input)
	if err := s.validateInput(input); err != nil {
		return Invoice{}, err
	}

	if s.Templates != nil && input.TemplateID != "" {
		if err := s.Templates.EnsureUsable(ctx, userID, input.TemplateID); err != nil {
			return Invoice{}, err
		}
	}

	calc, err := s.compute(input)
	if err != nil {
		return Invoice{}, err
	}

	itemsJSON, err := marshalItems(input.Items)
	if err != nil {
		return Invoice{}, fmt.Errorf("marshal items: %w", err)
	}

	row := Row{
		UserID:         uid,
		ReceiptType:    input.ReceiptType,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  toText(input.CustomerEmail),
		CustomerPhone:  toText(input.CustomerPhone),
		Items:          itemsJSON,
		TaxPercent:     input.TaxPercent,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		Subtotal:       calc.Subtotal,
		DiscountAmount: calc.DiscountAmount,
		TaxAmount:      calc.TaxAmount,
		Total:          calc.Total,
		Currency:       input.Currency,
		Notes:          toText(input.Notes),
		Dimension:      input.Dimension,
		TemplateID:     input.TemplateID,
		Status:         input.Status,
	}

	var stored Row
	for attempt := 0; attempt < receiptNumberAttempts; attempt++ {
		row.ReceiptNumber, err = s.nextReceiptNumber(ctx, uid)
		if err != nil {
			return Invoice{}, fmt.Errorf("allocate receipt number: %w", err)
		}
		stored, err = s.Store.Insert(ctx, row)
		if err == nil {
			break
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && attempt < receiptNumberAttempts-1 {
			// concurrent create took the number, re-allocate
			continue
		}
		return Invoice{}, fmt.Errorf("insert invoice: %w", err)
	}

	inv, err := convertRow(stored)
	if err != nil {
		return Invoice{}, err
	}
	obs.ObserveInvoiceCreated(inv.Status, inv.Currency)
	s.publish(ctx, events.TopicInvoiceCreated, inv.ID, userID, map[string]any{
		"receipt_number": inv.ReceiptNumber,
		"total":          inv.Total,
		"currency":       inv.Currency,
		"status":         inv.Status,
	})
	return inv, nil
}

// List returns the user's receipts, newest first.
func (s *Service) List(ctx context.Context, userID, status string, page, perPage int) ([]Invoice, int64, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return nil, 0, common.ErrUnauthorized("unauthorized")
	}
	if status != "" && status != StatusDraft && status != StatusCompleted && status != StatusVoid {
		return nil, 0, common.ErrValidation("invalid status filter", nil)
	}
	rows, total, err := s.Store.List(ctx, uid, ListFilter{
		Status: status,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := convertRow(row)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, inv)
	}
	return out, total, nil
}

// Get returns one receipt scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (Invoice, error) {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	return convertRow(row)
}

// Void marks a completed receipt void. Void receipts stay in history.
func (s *Service) Void(ctx context.Context, userID, id string) (Invoice, error) {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	if row.Status == StatusVoid {
		return Invoice{}, common.ErrConflict("ALREADY_VOID", "invoice is already void", nil)
	}
	uid, _ := toUUID(userID)
	updated, err := s.Store.SetStatus(ctx, uid, row.ID, StatusVoid)
	if err != nil {
		return Invoice{}, fmt.Errorf("void invoice: %w", err)
	}
	inv, err := convertRow(updated)
	if err != nil {
		return Invoice{}, err
	}
	s.publish(ctx, events.TopicInvoiceVoided, inv.ID, userID, map[string]any{
		"receipt_number": inv.ReceiptNumber,
	})
	return inv, nil
}

// MarkDownloaded records the first PDF download timestamp.
func (s *Service) MarkDownloaded(ctx context.Context, userID, id string) (Invoice, error) {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	if row.DownloadedAt.Valid {
		return convertRow(row)
	}
	uid, _ := toUUID(userID)
	updated, err := s.Store.MarkDownloaded(ctx, uid, row.ID, s.now())
	if err != nil {
		return Invoice{}, fmt.Errorf("mark downloaded: %w", err)
	}
	return convertRow(updated)
}

// Delete removes a receipt permanently.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return err
	}
	uid, _ := toUUID(userID)
	if err := s.Store.Delete(ctx, uid, row.ID); err != nil {
		if errors.Is(err, errNotFound) {
			return common.ErrNotFound("invoice not found")
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	s.publish(ctx, events.TopicInvoiceDeleted, id, userID, map[string]any{
		"receipt_number": row.ReceiptNumber,
	})
	return nil
}

// SendEmail queues the receipt for email delivery to the customer.
func (s *Service) SendEmail(ctx context.Context, userID, id, overrideTo string) (string, error) {
	if s.Emails == nil {
		return "", common.NewAppError("EMAIL_DISABLED", "email delivery is not configured", http.StatusServiceUnavailable, nil)
	}
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return "", err
	}
	if row.Status == StatusVoid {
		return "", common.ErrConflict("INVOICE_VOID", "cannot email a void invoice", nil)
	}
	to := strings.TrimSpace(overrideTo)
	if to == "" && row.CustomerEmail.Valid {
		to = row.CustomerEmail.String
	}
	if to == "" {
		return "", common.ErrValidation("invoice has no customer email", nil)
	}
	if err := s.Emails.EnqueueReceiptEmail(ctx, uuidString(row.ID), userID, to); err != nil {
		obs.ObserveReceiptEmail("enqueue_error")
		return "", fmt.Errorf("enqueue receipt email: %w", err)
	}
	obs.ObserveReceiptEmail("queued")
	s.publish(ctx, events.TopicInvoiceEmailed, uuidString(row.ID), userID, map[string]any{
		"to": to,
	})
	return to, nil
}

func (s *Service) fetch(ctx context.Context, userID, id string) (Row, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Row{}, common.ErrUnauthorized("unauthorized")
	}
	iid, err := toUUID(id)
	if err != nil {
		return Row{}, common.ErrNotFound("invoice not found")
	}
	row, err := s.Store.ByID(ctx, uid, iid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Row{}, common.ErrNotFound("invoice not found")
		}
		return Row{}, fmt.Errorf("get invoice: %w", err)
	}
	return row, nil
}

func (s *Service) compute(input CreateInput) (receipt.Calculation, error) {
	items := make([]receipt.Item, 0, len(input.Items))
	for _, it := range input.Items {
		items = append(items, receipt.Item{Price: it.Price, Qty: it.Qty})
	}
	calc, err := receipt.Compute(items, receipt.Options{
		TaxPercent:    input.TaxPercent,
		DiscountType:  receipt.DiscountType(input.DiscountType),
		DiscountValue: input.DiscountValue,
	})
	if err != nil {
		obs.ObserveCalculatorCheck(calculatorResult(err))
		return receipt.Calculation{}, common.ErrValidation(err.Error(), err)
	}
	return calc, nil
}

func (s *Service) validateInput(input CreateInput) error {
	if s.Validate == nil {
		return nil
	}
	err := s.Validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
		return common.NewAppError("VALIDATION_ERROR", "invalid invoice payload", http.StatusBadRequest, err).WithDetails(details)
	}
	return common.ErrValidation("invalid invoice payload", err)
}

// nextReceiptNumber builds RS-YYYYMMDD-NNNN, sequential per user per day.
// The sequence continues from the highest issued suffix rather than a row
// count, so deleting a mid-day receipt never re-issues a taken number.
func (s *Service) nextReceiptNumber(ctx context.Context, userID pgtype.UUID) (string, error) {
	prefix := "RS-" + s.now().Format("20060102") + "-"
	last, err := s.Store.LastReceiptNumber(ctx, userID, prefix)
	if err != nil {
		return "", err
	}
	seq := 1
	if len(last) > len(prefix) {
		if n, err := strconv.Atoi(last[len(prefix):]); err == nil {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

func (s *Service) publish(ctx context.Context, topic, aggregateID, userID string, payload map[string]any) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(ctx, events.Event{
		Topic:       topic,
		AggregateID: aggregateID,
		UserID:      userID,
		Payload:     payload,
		OccurredAt:  s.now(),
	})
}

func normalizeInput(input *CreateInput) {
	if input.ReceiptType == "" {
		input.ReceiptType = "product"
	}
	if input.DiscountType == "" {
		input.DiscountType = string(receipt.DiscountFlat)
	}
	if input.Currency == "" {
		input.Currency = string(receipt.PHP)
	}
	if input.Dimension == "" {
		input.Dimension = "thermal-80mm"
	}
	if input.TemplateID == "" {
		input.TemplateID = "default"
	}
	if input.Status == "" {
		input.Status = StatusCompleted
	}
	input.CustomerEmail = strings.TrimSpace(strings.ToLower(input.CustomerEmail))
}

func calculatorResult(err error) string {
	switch {
	case errors.Is(err, receipt.ErrTaxOutOfRange):
		return "tax_out_of_range"
	case errors.Is(err, receipt.ErrNegativeDiscount):
		return "negative_discount"
	case errors.Is(err, receipt.ErrDiscountPercentageOutOfRange):
		return "discount_percentage_out_of_range"
	default:
		return "error"
	}
}
