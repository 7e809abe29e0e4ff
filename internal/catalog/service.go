package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/resibilis/backend-resibilis/internal/common"
)

// TypeProduct and TypeService are the saved item kinds.
const (
	TypeProduct = "product"
	TypeService = "service"
)

// Input carries a saved product or service payload.
type Input struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Type         string   `json:"type" validate:"omitempty,oneof=product service"`
	DefaultPrice *float64 `json:"default_price" validate:"omitempty,gte=0,lte=99999999.99"`
	Description  string   `json:"description" validate:"max=1000"`
	Unit         string   `json:"unit" validate:"max=20"`
	IsActive     *bool    `json:"is_active"`
}

// Item is the API representation of a saved product or service.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	DefaultPrice *float64  `json:"default_price,omitempty"`
	Description  string    `json:"description,omitempty"`
	Unit         string    `json:"unit,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service manages the user's saved products and services. List reads go
// through the Redis cache; every write invalidates the user's keys.
type Service struct {
	Store    Store
	Cache    *Cache
	Validate *validator.Validate
}

type cachedList struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}

// Create saves a new product or service.
func (s *Service) Create(ctx context.Context, userID string, input Input) (Item, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Item{}, common.ErrUnauthorized("unauthorized")
	}
	normalizeInput(&input)
	if err := s.validateInput(input); err != nil {
		return Item{}, err
	}
	row, err := s.Store.Insert(ctx, rowFromInput(uid, pgtype.UUID{}, input))
	if err != nil {
		return Item{}, fmt.Errorf("insert item: %w", err)
	}
	s.invalidate(ctx, userID)
	return convertRow(row), nil
}

// List returns the user's saved items sorted by name.
func (s *Service) List(ctx context.Context, userID string, activeOnly bool, itemType string, page, perPage int) ([]Item, int64, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return nil, 0, common.ErrUnauthorized("unauthorized")
	}
	if itemType != "" && itemType != TypeProduct && itemType != TypeService {
		return nil, 0, common.ErrValidation("invalid type filter", nil)
	}

	key := s.listCacheKey(userID, activeOnly, itemType, page, perPage)
	var cached cachedList
	if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached.Items, cached.Total, nil
	}

	rows, total, err := s.Store.List(ctx, uid, ListFilter{
		ActiveOnly: activeOnly,
		Type:       itemType,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, convertRow(row))
	}
	_ = s.Cache.SetJSON(ctx, key, cachedList{Items: items, Total: total})
	return items, total, nil
}

// Get returns a single saved item by id.
func (s *Service) Get(ctx context.Context, userID, id string) (Item, error) {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return Item{}, err
	}
	return convertRow(row), nil
}

// Update replaces a saved item's fields.
func (s *Service) Update(ctx context.Context, userID, id string, input Input) (Item, error) {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return Item{}, err
	}
	normalizeInput(&input)
	if err := s.validateInput(input); err != nil {
		return Item{}, err
	}
	updated, err := s.Store.Update(ctx, rowFromInput(row.UserID, row.ID, input))
	if err != nil {
		return Item{}, fmt.Errorf("update item: %w", err)
	}
	s.invalidate(ctx, userID)
	return convertRow(updated), nil
}

// Delete removes a saved item.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	row, err := s.fetch(ctx, userID, id)
	if err != nil {
		return err
	}
	affected, err := s.Store.Delete(ctx, row.UserID, row.ID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound("item not found")
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) fetch(ctx context.Context, userID, id string) (Row, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Row{}, common.ErrUnauthorized("unauthorized")
	}
	iid, err := toUUID(id)
	if err != nil {
		return Row{}, common.ErrNotFound("item not found")
	}
	row, err := s.Store.ByID(ctx, uid, iid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Row{}, common.ErrNotFound("item not found")
		}
		return Row{}, fmt.Errorf("get item: %w", err)
	}
	return row, nil
}

func (s *Service) validateInput(input Input) error {
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
		return common.ErrValidation("invalid item payload", err).WithDetails(details)
	}
	return common.ErrValidation("invalid item payload", err)
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	_ = s.Cache.InvalidatePrefix(ctx, listPrefix(userID))
}

func (s *Service) listCacheKey(userID string, activeOnly bool, itemType string, page, perPage int) string {
	return fmt.Sprintf("%s%t:%s:%d:%d", listPrefix(userID), activeOnly, itemType, page, perPage)
}

func listPrefix(userID string) string {
	return "catalog:items:" + userID + ":"
}

func normalizeInput(input *Input) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Type == "" {
		input.Type = TypeProduct
	}
	if input.IsActive == nil {
		active := true
		input.IsActive = &active
	}
}

func rowFromInput(userID, id pgtype.UUID, input Input) Row {
	row := Row{
		ID:          id,
		UserID:      userID,
		Name:        input.Name,
		Type:        input.Type,
		Description: toText(input.Description),
		Unit:        toText(input.Unit),
		IsActive:    *input.IsActive,
	}
	if input.DefaultPrice != nil {
		row.DefaultPrice = pgtype.Float8{Float64: *input.DefaultPrice, Valid: true}
	}
	return row
}

func convertRow(row Row) Item {
	item := Item{
		ID:          uuidString(row.ID),
		Name:        row.Name,
		Type:        row.Type,
		Description: textString(row.Description),
		Unit:        textString(row.Unit),
		IsActive:    row.IsActive,
	}
	if row.DefaultPrice.Valid {
		price := row.DefaultPrice.Float64
		item.DefaultPrice = &price
	}
	if row.CreatedAt.Valid {
		item.CreatedAt = row.CreatedAt.Time
	}
	return item
}
