package template

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/resibilis/backend-resibilis/internal/common"
)

// Handler serves the template registry endpoints.
type Handler struct {
	Service *Service
}

// Routes mounts the template endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/purchase", h.Purchase)
	return r
}

// List returns every template with ownership resolved for the caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := common.UserID(r.Context())
	templates, err := h.Service.List(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, templates)
}

type purchaseRequest struct {
	TemplateID string `json:"template_id"`
}

// Purchase records ownership of a premium template.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.UserID(r.Context())
	if !ok {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body", nil)
		return
	}
	purchase, err := h.Service.Purchase(r.Context(), userID, req.TemplateID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusCreated, purchase)
}
