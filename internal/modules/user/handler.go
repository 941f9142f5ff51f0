package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth/identity"
)

// Handler exposes user registration and account endpoints.
type Handler struct {
	service Service
	authn   func(http.Handler) http.Handler
}

func NewHandler(service Service, authn func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authn: authn}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/user/register", h.register)
	r.Post("/api/v1/user/register/confirm", h.confirm)
	r.Group(func(r chi.Router) {
		r.Use(h.authn)
		r.Get("/api/v1/user/details", h.details)
		r.Post("/api/v1/user/details", h.updateDetails)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Type     string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	_, err := h.service.Register(r.Context(), req.Email, req.Password, req.Type)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateEmail) {
			code = http.StatusConflict
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{"Status": true})
}

func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Email == "" || req.Token == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	if err := h.service.Confirm(r.Context(), req.Email, req.Token); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidToken) {
			code = http.StatusBadRequest
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())
	u, err := h.service.GetUser(r.Context(), id.UserID)
	if err != nil {
		fail(w, http.StatusNotFound, err.Error())
		return
	}
	respond(w, http.StatusOK, u)
}

func (h *Handler) updateDetails(w http.ResponseWriter, r *http.Request) {
	id, _ := identity.FromContext(r.Context())

	var req UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if _, err := h.service.UpdateDetails(r.Context(), id.UserID, req); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, ErrDuplicateEmail) {
			code = http.StatusConflict
		}
		fail(w, code, err.Error())
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]interface{}{"Status": false, "Errors": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
