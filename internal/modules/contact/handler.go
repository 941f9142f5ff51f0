package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth"
)

// Handler exposes contact HTTP endpoints. All routes require authentication.
type Handler struct {
	service Service
	authn   func(http.Handler) http.Handler
}

func NewHandler(service Service, authn func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authn: authn}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.authn)
		r.Get("/api/v1/user/contact", h.list)
		r.Post("/api/v1/user/contact", h.create)
		r.Put("/api/v1/user/contact", h.update)
		r.Delete("/api/v1/user/contact", h.del)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	contacts, err := h.service.List(r.Context(), id.UserID)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []*Contact{}
	}
	respond(w, http.StatusOK, contacts)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Address == "" || req.Phone == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	if _, err := h.service.Create(r.Context(), id.UserID, req.Address, req.Phone); err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{"Status": true})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req struct {
		ID      int64  `json:"id"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID <= 0 {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	if _, err := h.service.Update(r.Context(), id.UserID, req.ID, req.Address, req.Phone); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			code = http.StatusNotFound
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

func (h *Handler) del(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req struct {
		Items string `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Items == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id.UserID, req.Items)
	if err != nil {
		fail(w, http.StatusBadRequest, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"Status":          true,
		"Deleted objects": deleted,
	})
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]interface{}{"Status": false, "Errors": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
