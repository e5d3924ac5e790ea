package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/catalog"
	"github.com/arkka/go-shop-api/internal/pricing"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/go-chi/chi/v5"
)

type ProductsHandler struct {
	Catalog  *catalog.Service
	Products *store.Store[store.Product, *store.Product]
	Reviews  *store.Store[store.Review, *store.Review]
	Guard    *auth.Guard
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/search/{query}", h.search)
		r.Get("/{id}", h.get)
		r.Get("/{id}/reviews", h.listReviews)

		r.Group(func(r chi.Router) {
			r.Use(h.Guard.Protect)
			r.Post("/{id}/reviews", h.createReview)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.Guard.Protect, h.Guard.RequireRole(store.RoleAdmin))
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := catalog.ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Featured: q.Get("featured") == "true",
		SortBy:   q.Get("sortBy"),
		Order:    q.Get("order"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		params.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		params.MaxPrice = &v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = v
	}

	result, err := h.Catalog.List(params)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"total":      result.Total,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"products":   result.Products,
		"filters":    result.Filters,
	})
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
}

type productReq struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	ComparePrice float64       `json:"comparePrice"`
	Category     string        `json:"category"`
	Stock        int           `json:"stock"`
	SKU          string        `json:"sku"`
	Tags         []string      `json:"tags"`
	Featured     bool          `json:"featured"`
	Images       []store.Image `json:"images"`
}

func (req *productReq) validate() string {
	name := strings.TrimSpace(req.Name)
	desc := strings.TrimSpace(req.Description)
	switch {
	case len(name) < 3 || len(name) > 100:
		return "Name must be 3-100 characters"
	case len(desc) < 10 || len(desc) > 1000:
		return "Description must be 10-1000 characters"
	case req.Price < 0:
		return "Price must be non-negative"
	case req.Stock < 0:
		return "Stock must be non-negative"
	case strings.TrimSpace(req.Category) == "":
		return "Category is required"
	}
	return ""
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}

	product, err := h.Products.Create(store.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ComparePrice: req.ComparePrice,
		Category:     req.Category,
		Stock:        req.Stock,
		SKU:          req.SKU,
		Tags:         req.Tags,
		Featured:     req.Featured,
		Images:       req.Images,
	})
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "product": product})
}

// productPatch carries only the fields present in the request; absent fields
// keep their stored value.
type productPatch struct {
	Name         *string        `json:"name"`
	Description  *string        `json:"description"`
	Price        *float64       `json:"price"`
	ComparePrice *float64       `json:"comparePrice"`
	Category     *string        `json:"category"`
	Stock        *int           `json:"stock"`
	SKU          *string        `json:"sku"`
	Tags         *[]string      `json:"tags"`
	Featured     *bool          `json:"featured"`
	Images       *[]store.Image `json:"images"`
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productPatch
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		fail(w, http.StatusBadRequest, "Price must be non-negative")
		return
	}
	if req.Stock != nil && *req.Stock < 0 {
		fail(w, http.StatusBadRequest, "Stock must be non-negative")
		return
	}

	product, err := h.Products.Update(chi.URLParam(r, "id"), func(p *store.Product) {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.ComparePrice != nil {
			p.ComparePrice = *req.ComparePrice
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.SKU != nil {
			p.SKU = *req.SKU
		}
		if req.Tags != nil {
			p.Tags = *req.Tags
		}
		if req.Featured != nil {
			p.Featured = *req.Featured
		}
		if req.Images != nil {
			p.Images = *req.Images
		}
	})
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": product})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(chi.URLParam(r, "id")); err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *ProductsHandler) search(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "query")
	results, err := h.Catalog.Search(query)
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"query":    strings.ToLower(query),
		"count":    len(results),
		"products": results,
	})
}

func (h *ProductsHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	reviews, err := h.Reviews.FindAll(func(rv store.Review) bool { return rv.ProductID == productID })
	if err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(reviews),
		"reviews": reviews,
	})
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// createReview stores the review and recomputes the product's rating
// aggregate from all reviews for that product.
func (h *ProductsHandler) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewReq
	if err := decodeJSON(r, &req); err != nil {
		fail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		fail(w, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	productID := chi.URLParam(r, "id")
	if _, err := h.Products.FindByID(productID); err != nil {
		failErr(w, err)
		return
	}

	me, _ := auth.CurrentUser(r.Context())
	review, err := h.Reviews.Create(store.Review{
		ProductID: productID,
		UserID:    me.ID,
		UserName:  me.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		failErr(w, err)
		return
	}

	all, err := h.Reviews.FindAll(func(rv store.Review) bool { return rv.ProductID == productID })
	if err != nil {
		failErr(w, err)
		return
	}
	sum := 0
	for _, rv := range all {
		sum += rv.Rating
	}
	if _, err := h.Products.Update(productID, func(p *store.Product) {
		p.Ratings = store.Ratings{
			Average: pricing.Round2(float64(sum) / float64(len(all))),
			Count:   len(all),
		}
	}); err != nil {
		failErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "review": review})
}
