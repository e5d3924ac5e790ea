package httpx

import (
	"net/http"
	"strings"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/catalog"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type CategoriesHandler struct {
	Catalog *catalog.Service
	Guard   *auth.Guard
}

func (h *CategoriesHandler) Register(r *chi.Mux) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.list)
		r.With(h.Guard.Protect, h.Guard.RequireRole(store.RoleAdmin)).Post("/", h.create)
	})
}

func (h *CategoriesHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories()
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "categories": categories})
}

type categoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoriesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		fail(w, http.StatusBadRequest, "Category name is required")
		return
	}
	category, err := h.Catalog.CreateCategory(req.Name, req.Description)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "category": category})
}
