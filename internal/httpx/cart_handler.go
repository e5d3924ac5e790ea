package httpx

import (
	"net/http"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/cart"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	Cart  *cart.Service
	Guard *auth.Guard
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(h.Guard.Protect)
		r.Get("/", h.view)
		r.Post("/add", h.add)
		r.Put("/update/{productId}", h.update)
		r.Delete("/remove/{productId}", h.remove)
		r.Delete("/clear", h.clear)
	})
}

func (h *CartHandler) view(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	view, err := h.Cart.View(me.ID)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cart": view})
}

type addToCartReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ProductID == "" {
		fail(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	me, _ := auth.CurrentUser(r.Context())
	updated, err := h.Cart.Add(me.ID, req.ProductID, req.Quantity)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Item added to cart",
		"cart":    updated,
	})
}

type updateCartReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCartReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	me, _ := auth.CurrentUser(r.Context())
	updated, err := h.Cart.UpdateQuantity(me.ID, chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Cart updated",
		"cart":    updated,
	})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	updated, err := h.Cart.Remove(me.ID, chi.URLParam(r, "productId"))
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Item removed from cart",
		"cart":    updated,
	})
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	updated, err := h.Cart.Clear(me.ID)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Cart cleared",
		"cart":    updated,
	})
}
