package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth"
	"github.com/retailhub/orders-backend/internal/modules/user"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service Service
	authn   func(http.Handler) http.Handler
}

func NewHandler(service Service, authn func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, authn: authn}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/api/v1/categories", h.listCategories)
	r.Get("/api/v1/products", h.listOffers)
	r.Group(func(r chi.Router) {
		r.Use(h.authn)
		r.Post("/api/v1/seller/catalog", h.importCatalog)
	})
}

func (h *Handler) importCatalog(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok || id.Type != user.TypeSeller {
		respond(w, http.StatusForbidden, map[string]interface{}{
			"Status": false,
			"Error":  "Only for sellers",
		})
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		respond(w, http.StatusBadRequest, map[string]interface{}{
			"Status": false,
			"Error":  "All required arguments not provided",
		})
		return
	}

	if err := h.service.ImportFromURL(r.Context(), id.UserID, req.URL); err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, ErrInvalidURL) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]interface{}{
			"Status": false,
			"Error":  err.Error(),
		})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if categories == nil {
		categories = []*Category{}
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	filter := OfferFilter{}
	if v := r.URL.Query().Get("seller_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fail(w, http.StatusBadRequest, "seller_id must be an integer")
			return
		}
		filter.SellerID = id
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fail(w, http.StatusBadRequest, "category_id must be an integer")
			return
		}
		filter.CategoryID = id
	}

	offers, err := h.service.ListOffers(r.Context(), filter)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if offers == nil {
		offers = []*Offer{}
	}
	respond(w, http.StatusOK, offers)
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]interface{}{"Status": false, "Errors": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
