package httpx

import (
	"net/http"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/orders"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	Orders *orders.Service
	Store  *store.Store[store.Order, *store.Order]
	Guard  *auth.Guard
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.Guard.Protect)
		r.Post("/", h.create)
		r.Get("/my-orders", h.listOwn)
		r.Get("/{id}", h.get)
		r.With(h.Guard.RequireRole(store.RoleAdmin)).Put("/{id}/status", h.setStatus)
		r.Post("/{id}/cancel", h.cancel)
	})
}

type createOrderReq struct {
	Items           []orders.ItemInput `json:"items"`
	ShippingAddress store.Address      `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

func validPaymentMethod(m string) bool {
	return m == "cash" || m == "card" || m == "paypal"
}

func (h *OrdersHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if !validPaymentMethod(req.PaymentMethod) {
		fail(w, http.StatusBadRequest, "Payment method must be cash, card, or paypal")
		return
	}
	if req.ShippingAddress == (store.Address{}) {
		fail(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	me, _ := auth.CurrentUser(r.Context())
	order, err := h.Orders.Place(orders.PlaceInput{
		UserID:          me.ID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "order": order})
}

func (h *OrdersHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	out, err := h.Orders.ListByUser(me.ID)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(out),
		"orders":  out,
	})
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	order, err := h.Store.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		failErr(w, err)
		return
	}
	me, _ := auth.CurrentUser(r.Context())
	if order.UserID != me.ID && me.Role != store.RoleAdmin {
		fail(w, http.StatusForbidden, "Not authorized to view this order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

type statusReq struct {
	Status store.OrderStatus `json:"status"`
}

func (h *OrdersHandler) setStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	order, err := h.Orders.SetStatus(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}

func (h *OrdersHandler) cancel(w http.ResponseWriter, r *http.Request) {
	me, _ := auth.CurrentUser(r.Context())
	order, err := h.Orders.Cancel(chi.URLParam(r, "id"), me.ID)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "order": order})
}
