package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/retailhub/orders-backend/internal/modules/auth"
	"github.com/retailhub/orders-backend/internal/modules/user"
)

// Handler exposes basket and order HTTP endpoints. All routes require
// authentication.
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
		r.Get("/api/v1/basket", h.listBasket)
		r.Post("/api/v1/basket", h.addToBasket)
		r.Put("/api/v1/basket", h.updateBasket)
		r.Delete("/api/v1/basket", h.deleteFromBasket)
		r.Get("/api/v1/order", h.listOrders)
		r.Post("/api/v1/order", h.place)
		r.Get("/api/v1/seller/orders", h.listSellerOrders)
	})
}

func (h *Handler) listBasket(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	orders, err := h.service.ListBasket(r.Context(), id.UserID)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) addToBasket(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	items, ok := decodeItems[AddItemRequest](w, r)
	if !ok {
		return
	}

	created, err := h.service.AddToBasket(r.Context(), id.UserID, items)
	if err != nil {
		failMutation(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"Status":          true,
		"Created objects": created,
	})
}

func (h *Handler) updateBasket(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	items, ok := decodeItems[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	updated, err := h.service.UpdateBasket(r.Context(), id.UserID, items)
	if err != nil {
		failMutation(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"Status":          true,
		"Updated objects": updated,
	})
}

func (h *Handler) deleteFromBasket(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req struct {
		Items string `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Items == "" {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return
	}

	deleted, err := h.service.DeleteFromBasket(r.Context(), id.UserID, req.Items)
	if err != nil {
		failMutation(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"Status":          true,
		"Deleted objects": deleted,
	})
}

func (h *Handler) place(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())

	var req struct {
		ID      int64 `json:"id"`
		Contact int64 `json:"contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.service.Place(r.Context(), id.UserID, req.ID, req.Contact); err != nil {
		failMutation(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"Status": true})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	orders, err := h.service.ListOrders(r.Context(), id.UserID)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listSellerOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.FromContext(r.Context())
	if id.Type != user.TypeSeller {
		respond(w, http.StatusForbidden, map[string]interface{}{
			"Status": false,
			"Error":  "Only for sellers",
		})
		return
	}

	orders, err := h.service.ListSellerOrders(r.Context(), id.UserID)
	if err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []*Order{}
	}
	respond(w, http.StatusOK, orders)
}

// decodeItems reads the {"items": [...]} payload. A missing list is a
// missing-arguments error, anything unparsable an invalid-format error.
func decodeItems[T any](w http.ResponseWriter, r *http.Request) ([]T, bool) {
	var req struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	if len(req.Items) == 0 {
		fail(w, http.StatusBadRequest, "Necessary arguments are not specified")
		return nil, false
	}

	raw := req.Items
	// Clients of the old API send the list as a JSON-encoded string.
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			fail(w, http.StatusBadRequest, "Invalid request format")
			return nil, false
		}
		raw = json.RawMessage(s)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		fail(w, http.StatusBadRequest, "Invalid request format")
		return nil, false
	}
	return items, true
}

func failMutation(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrMissingArguments):
		code = http.StatusBadRequest
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, ErrInvalidArguments),
		errors.Is(err, ErrProductNotFound):
		code = http.StatusBadRequest
	case errors.Is(err, ErrDuplicateItem):
		code = http.StatusConflict
	}
	fail(w, code, err.Error())
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]interface{}{"Status": false, "Errors": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
