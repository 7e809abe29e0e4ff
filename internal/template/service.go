package template

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/events"
	"github.com/resibilis/backend-resibilis/internal/receipt"
)

// Template is the API representation of a receipt template.
type Template struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PreviewURL     string    `json:"preview_url,omitempty"`
	IsPremium      bool      `json:"is_premium"`
	Price          float64   `json:"price"`
	FormattedPrice string    `json:"formatted_price"`
	Owned          bool      `json:"owned"`
	CreatedAt      time.Time `json:"created_at"`
}

// Purchase records one template acquisition.
type Purchase struct {
	ID          string    `json:"id"`
	TemplateID  string    `json:"template_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// Service manages the template registry and per-user ownership. Free
// templates are usable by everyone; premium ones require a purchase.
type Service struct {
	Store  Store
	Events events.Publisher
}

// List returns every template with the caller's ownership resolved. Free
// templates always report owned.
func (s *Service) List(ctx context.Context, userID string) ([]Template, error) {
	rows, err := s.Store.All(ctx)
	if err != nil {
		return nil, err
	}
	owned := map[string]struct{}{}
	if uid, err := toUUID(userID); err == nil {
		ids, err := s.Store.OwnedIDs(ctx, uid)
		if err != nil {
			return nil, fmt.Errorf("resolve owned templates: %w", err)
		}
		for _, id := range ids {
			owned[id] = struct{}{}
		}
	}
	out := make([]Template, 0, len(rows))
	for _, row := range rows {
		tpl := convertRow(row)
		_, has := owned[row.ID]
		tpl.Owned = !row.IsPremium || has
		out = append(out, tpl)
	}
	return out, nil
}

// Purchase records ownership of a premium template. Buying a free template
// or one already owned is a conflict.
func (s *Service) Purchase(ctx context.Context, userID, templateID string) (Purchase, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Purchase{}, common.ErrUnauthorized("unauthorized")
	}
	templateID = strings.TrimSpace(templateID)
	if templateID == "" {
		return Purchase{}, common.ErrValidation("template_id is required", nil)
	}
	tpl, err := s.Store.ByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Purchase{}, common.ErrNotFound("template not found")
		}
		return Purchase{}, fmt.Errorf("get template: %w", err)
	}
	if !tpl.IsPremium {
		return Purchase{}, common.ErrConflict("TEMPLATE_FREE", "free templates do not need a purchase", nil)
	}
	row, err := s.Store.InsertPurchase(ctx, uid, templateID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Purchase{}, common.ErrConflict("TEMPLATE_ALREADY_OWNED", "template already purchased", err)
		}
		return Purchase{}, fmt.Errorf("record purchase: %w", err)
	}
	purchase := Purchase{
		ID:         uuidString(row.ID),
		TemplateID: row.TemplateID,
	}
	if row.PurchasedAt.Valid {
		purchase.PurchasedAt = row.PurchasedAt.Time
	}
	if s.Events != nil {
		s.Events.Publish(ctx, events.Event{
			Topic:       events.TopicTemplatePurchased,
			AggregateID: templateID,
			UserID:      userID,
			Payload: map[string]any{
				"template_id": templateID,
				"price":       tpl.Price,
			},
		})
	}
	return purchase, nil
}

// EnsureUsable gates invoice creation: unknown templates 404, premium
// templates 403 unless purchased.
func (s *Service) EnsureUsable(ctx context.Context, userID, templateID string) error {
	tpl, err := s.Store.ByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrNotFound("template not found")
		}
		return fmt.Errorf("get template: %w", err)
	}
	if !tpl.IsPremium {
		return nil
	}
	uid, err := toUUID(userID)
	if err != nil {
		return common.ErrUnauthorized("unauthorized")
	}
	owned, err := s.Store.Owned(ctx, uid, templateID)
	if err != nil {
		return fmt.Errorf("check template ownership: %w", err)
	}
	if !owned {
		return common.NewAppError("TEMPLATE_NOT_OWNED", "premium template requires purchase", http.StatusForbidden, nil)
	}
	return nil
}

func convertRow(row Row) Template {
	tpl := Template{
		ID:             row.ID,
		Name:           row.Name,
		IsPremium:      row.IsPremium,
		Price:          row.Price,
		FormattedPrice: receipt.FormatAmount(row.Price, receipt.PHP),
	}
	if row.Description.Valid {
		tpl.Description = row.Description.String
	}
	if row.PreviewURL.Valid {
		tpl.PreviewURL = row.PreviewURL.String
	}
	if row.CreatedAt.Valid {
		tpl.CreatedAt = row.CreatedAt.Time
	}
	return tpl
}

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
