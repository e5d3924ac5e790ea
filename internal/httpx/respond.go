package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arkka/go-shop-api/internal/cart"
	"github.com/arkka/go-shop-api/internal/catalog"
	"github.com/arkka/go-shop-api/internal/orders"
	"github.com/arkka/go-shop-api/internal/store"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "message": msg})
}

// failErr maps the error taxonomy onto HTTP statuses. Anything unrecognized
// is an internal failure.
func failErr(w http.ResponseWriter, err error) {
	var stockErr *orders.InsufficientStockError
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, err.Error())
	case errors.As(err, &stockErr):
		fail(w, http.StatusBadRequest, "Insufficient stock for "+stockErr.Name)
	case errors.Is(err, cart.ErrInsufficientStock):
		fail(w, http.StatusBadRequest, "Insufficient stock")
	case errors.Is(err, cart.ErrItemNotFound):
		fail(w, http.StatusNotFound, "Item not found in cart")
	case errors.Is(err, orders.ErrEmptyOrder):
		fail(w, http.StatusBadRequest, "No items in order")
	case errors.Is(err, orders.ErrInvalidQuantity):
		fail(w, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, orders.ErrInvalidTransition):
		fail(w, http.StatusBadRequest, "Invalid order status transition")
	case errors.Is(err, orders.ErrNotOwner):
		fail(w, http.StatusForbidden, "Not authorized for this order")
	case errors.Is(err, catalog.ErrCategoryExists):
		fail(w, http.StatusBadRequest, "Category already exists")
	default:
		fail(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
