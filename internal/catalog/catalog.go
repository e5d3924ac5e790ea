// Package catalog implements the product query surface (filter, sort,
// paginate, search) and category management.
package catalog

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/arkka/go-shop-api/internal/store"
)

var ErrCategoryExists = errors.New("category already exists")

// ListParams mirrors the product list query string.
type ListParams struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Featured bool
	Limit    int
	Page     int
	SortBy   string // createdAt | price | name | stock
	Order    string // asc | desc
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Filters struct {
	Categories []CategoryRef `json:"categories"`
	PriceRange PriceRange    `json:"priceRange"`
}

type ListResult struct {
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Products   []store.Product `json:"products"`
	Filters    Filters         `json:"filters"`
}

// CategoryWithCount annotates a category with its live product count.
type CategoryWithCount struct {
	store.Category
	Count int `json:"count"`
}

type Service struct {
	Products   *store.Store[store.Product, *store.Product]
	Categories *store.Store[store.Category, *store.Category]
}

// List applies filters, sorts, and paginates over the whole products
// collection.
func (s *Service) List(p ListParams) (ListResult, error) {
	products, err := s.Products.Read()
	if err != nil {
		return ListResult{}, err
	}

	filtered := products[:0:0]
	for _, prod := range products {
		if p.Category != "" && prod.Category != p.Category {
			continue
		}
		if p.MinPrice != nil && prod.Price < *p.MinPrice {
			continue
		}
		if p.MaxPrice != nil && prod.Price > *p.MaxPrice {
			continue
		}
		if p.Search != "" && !matches(prod, p.Search) {
			continue
		}
		if p.Featured && !prod.Featured {
			continue
		}
		filtered = append(filtered, prod)
	}

	sortProducts(filtered, p.SortBy, p.Order)

	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	page := p.Page
	if page <= 0 {
		page = 1
	}
	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	categories, err := s.Categories.Read()
	if err != nil {
		return ListResult{}, err
	}
	refs := make([]CategoryRef, 0, len(categories))
	for _, c := range categories {
		refs = append(refs, CategoryRef{ID: c.ID, Name: c.Name})
	}

	return ListResult{
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Products:   filtered[start:end],
		Filters:    Filters{Categories: refs, PriceRange: priceRange(filtered)},
	}, nil
}

// Search does a case-insensitive substring match over name, description,
// and tags.
func (s *Service) Search(query string) ([]store.Product, error) {
	return s.Products.FindAll(func(p store.Product) bool { return matches(p, query) })
}

// ListCategories returns every category with its product count.
func (s *Service) ListCategories() ([]CategoryWithCount, error) {
	categories, err := s.Categories.Read()
	if err != nil {
		return nil, err
	}
	products, err := s.Products.Read()
	if err != nil {
		return nil, err
	}
	out := make([]CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		n := 0
		for _, p := range products {
			if p.Category == c.Name {
				n++
			}
		}
		out = append(out, CategoryWithCount{Category: c, Count: n})
	}
	return out, nil
}

// CreateCategory derives the slug from the name and rejects duplicates.
func (s *Service) CreateCategory(name, description string) (store.Category, error) {
	exists, err := s.Categories.Exists(func(c store.Category) bool { return c.Name == name })
	if err != nil {
		return store.Category{}, err
	}
	if exists {
		return store.Category{}, ErrCategoryExists
	}
	return s.Categories.Create(store.Category{
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
	})
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases, collapses non-alphanumeric runs to a hyphen, and trims
// leading/trailing hyphens: "Home & Garden" -> "home-garden".
func Slugify(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

func matches(p store.Product, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortProducts(products []store.Product, sortBy, order string) {
	asc := order == "asc"
	less := func(a, b store.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch sortBy {
	case "price":
		less = func(a, b store.Product) bool { return a.Price < b.Price }
	case "name":
		less = func(a, b store.Product) bool { return a.Name < b.Name }
	case "stock":
		less = func(a, b store.Product) bool { return a.Stock < b.Stock }
	}
	sort.SliceStable(products, func(i, j int) bool {
		if asc {
			return less(products[i], products[j])
		}
		return less(products[j], products[i])
	})
}

func priceRange(products []store.Product) PriceRange {
	if len(products) == 0 {
		return PriceRange{}
	}
	r := PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price < r.Min {
			r.Min = p.Price
		}
		if p.Price > r.Max {
			r.Max = p.Price
		}
	}
	return r
}
