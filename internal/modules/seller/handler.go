package seller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth"
	"github.com/retailhub/orders-backend/internal/modules/user"
)

// Handler exposes seller HTTP endpoints.
type Handler struct {
	service Service
	authn   func(http.Handler) http.Handler
}

func NewHandler(service Service, authn func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authn: authn}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/sellers", h.list)
	r.Group(func(r chi.Router) {
		r.Use(h.authn)
		r.Get("/api/v1/seller/state", h.getState)
		r.Post("/api/v1/seller/state", h.setState)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.service.ListAccepting(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sellers == nil {
		sellers = []*Seller{}
	}
	respond(w, http.StatusOK, sellers)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	id, ok := sellerIdentity(w, r)
	if !ok {
		return
	}
	s, err := h.service.GetOwn(r.Context(), id.UserID)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusOK, s)
}

func (h *Handler) setState(w http.ResponseWriter, r *http.Request) {
	id, ok := sellerIdentity(w, r)
	if !ok {
		return
	}

	var req struct {
		State string `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.State == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	if err := h.service.SetState(r.Context(), id.UserID, req.State); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

// sellerIdentity extracts the caller and rejects non-sellers.
func sellerIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok || id.Type != user.TypeSeller {
		respond(w, http.StatusForbidden, map[string]interface{}{
			"Status": false,
			"Error":  "Only for sellers",
		})
		return auth.Identity{}, false
	}
	return id, true
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]interface{}{"Status": false, "Errors": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
