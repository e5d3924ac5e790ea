package httpx

import (
	"net/http"
	"sort"
	"time"

	"github.com/arkka/go-shop-api/internal/admin"
	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	Admin  *admin.Service
	Users  *store.Store[store.User, *store.User]
	Orders *store.Store[store.Order, *store.Order]
	Guard  *auth.Guard
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.Guard.Protect, h.Guard.RequireRole(store.RoleAdmin))
		r.Get("/stats", h.stats)
		r.Get("/users", h.users)
		r.Get("/orders/all", h.allOrders)
		r.Get("/analytics", h.analytics)
	})
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats()
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"totalSales":       stats.TotalSales,
		"totalOrders":      stats.TotalOrders,
		"totalProducts":    stats.TotalProducts,
		"totalCustomers":   stats.TotalCustomers,
		"totalCategories":  stats.TotalCategories,
		"recentOrders":     stats.RecentOrders,
		"lowStockProducts": stats.LowStockProducts,
	})
}

func (h *AdminHandler) users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.Read()
	if err != nil {
		failErr(w, err)
		return
	}
	public := make([]store.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(public),
		"users":   public,
	})
}

func (h *AdminHandler) allOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Read()
	if err != nil {
		failErr(w, err)
		return
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}

func (h *AdminHandler) analytics(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}
	analytics, err := h.Admin.Analytics(period, time.Now().UTC())
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analytics": analytics})
}
