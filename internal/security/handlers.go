package security

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/resibilis/backend-resibilis/internal/common"
	"github.com/resibilis/backend-resibilis/internal/obs"
)

// Handler exposes the email validation endpoint used by the signup form.
type Handler struct {
	Verifier *RemoteVerifier
	Logger   zerolog.Logger
}

type validateEmailRequest struct {
	Email string `json:"email"`
}

type validateEmailResponse struct {
	Valid bool `json:"valid"`
}

// ValidateEmail handles POST /api/v1/validate-email. Format and denylist
// checks are authoritative; the remote verifier is advisory and fails open.
func (h *Handler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	var req validateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request payload", nil)
		return
	}

	if err := ValidateEmail(req.Email); err != nil {
		code := "EMAIL_INVALID"
		if errors.Is(err, ErrEmailRequired) {
			code = "EMAIL_REQUIRED"
		} else if errors.Is(err, ErrEmailDisposable) {
			code = "EMAIL_DISPOSABLE"
		}
		obs.ObserveEmailCheck("rejected")
		common.JSONError(w, http.StatusBadRequest, code, err.Error(), nil)
		return
	}

	if h.Verifier != nil {
		deliverable, err := h.Verifier.Deliverable(r.Context(), req.Email)
		switch {
		case err != nil:
			h.Logger.Warn().Err(err).Msg("email verifier unavailable")
		case !deliverable:
			obs.ObserveEmailCheck("undeliverable")
			common.JSONError(w, http.StatusBadRequest, "EMAIL_UNDELIVERABLE", "email address appears undeliverable", nil)
			return
		}
	}

	obs.ObserveEmailCheck("ok")
	common.JSONData(w, http.StatusOK, validateEmailResponse{Valid: true})
}
