package profile

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
	"github.com/resibilis/backend-resibilis/internal/security"
)

// Input carries a profile update payload.
type Input struct {
	FullName        string `json:"full_name" validate:"max=200"`
	AvatarURL       string `json:"avatar_url" validate:"omitempty,url,max=500"`
	BusinessName    string `json:"business_name" validate:"max=200"`
	BusinessAddress string `json:"business_address" validate:"max=500"`
	BusinessPhone   string `json:"business_phone" validate:"max=32"`
	BusinessEmail   string `json:"business_email" validate:"omitempty,max=254"`
}

// Profile is the API representation of a business profile.
type Profile struct {
	FullName         string     `json:"full_name,omitempty"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	IsPremium        bool       `json:"is_premium"`
	PremiumExpiresAt *time.Time `json:"premium_expires_at,omitempty"`
	BusinessName     string     `json:"business_name,omitempty"`
	BusinessAddress  string     `json:"business_address,omitempty"`
	BusinessPhone    string     `json:"business_phone,omitempty"`
	BusinessEmail    string     `json:"business_email,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Service manages the per-user business profile shown on receipts.
type Service struct {
	Store    Store
	Validate *validator.Validate
}

// Get returns the user's profile. A user without a stored row gets the
// empty profile rather than a 404.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Profile{}, common.ErrUnauthorized("unauthorized")
	}
	row, err := s.Store.ByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return convertRow(row), nil
}

// Update upserts the user's profile. Premium flags are never writable here.
func (s *Service) Update(ctx context.Context, userID string, input Input) (Profile, error) {
	uid, err := toUUID(userID)
	if err != nil {
		return Profile{}, common.ErrUnauthorized("unauthorized")
	}
	input.BusinessEmail = strings.TrimSpace(strings.ToLower(input.BusinessEmail))
	if err := s.validateInput(input); err != nil {
		return Profile{}, err
	}
	if input.BusinessEmail != "" {
		if err := security.ValidateEmail(input.BusinessEmail); err != nil {
			return Profile{}, common.ErrValidation("invalid business email", err)
		}
	}
	row, err := s.Store.Upsert(ctx, Row{
		UserID:          uid,
		FullName:        toText(input.FullName),
		AvatarURL:       toText(input.AvatarURL),
		BusinessName:    toText(input.BusinessName),
		BusinessAddress: toText(input.BusinessAddress),
		BusinessPhone:   toText(input.BusinessPhone),
		BusinessEmail:   toText(input.BusinessEmail),
	})
	if err != nil {
		return Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return convertRow(row), nil
}

// BusinessName resolves the display name for receipt emails. Falls back to
// the full name when no business name is set.
func (s *Service) BusinessName(ctx context.Context, userID string) (string, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if p.BusinessName != "" {
		return p.BusinessName, nil
	}
	return p.FullName, nil
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
		return common.ErrValidation("invalid profile payload", err).WithDetails(details)
	}
	return common.ErrValidation("invalid profile payload", err)
}

func convertRow(row Row) Profile {
	p := Profile{
		FullName:        textString(row.FullName),
		AvatarURL:       textString(row.AvatarURL),
		IsPremium:       row.IsPremium,
		BusinessName:    textString(row.BusinessName),
		BusinessAddress: textString(row.BusinessAddress),
		BusinessPhone:   textString(row.BusinessPhone),
		BusinessEmail:   textString(row.BusinessEmail),
	}
	if row.PremiumExpiresAt.Valid {
		at := row.PremiumExpiresAt.Time
		p.PremiumExpiresAt = &at
	}
	if row.UpdatedAt.Valid {
		p.UpdatedAt = row.UpdatedAt.Time
	}
	return p
}

func toUUID(value string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(strings.TrimSpace(value)); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
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
