package catalog_test

import (
	"testing"

	"github.com/arkka/go-shop-api/internal/catalog"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Home & Garden", "home-garden"},
		{"Electronics!!", "electronics"},
		{"Books", "books"},
		{"  Odd   Spacing  ", "odd-spacing"},
		{"already-slugged", "already-slugged"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, catalog.Slugify(tt.in), tt.in)
	}
}

func newService(t *testing.T) (*catalog.Service, *store.Collections) {
	t.Helper()
	db := store.Open(t.TempDir())
	return &catalog.Service{Products: db.Products, Categories: db.Categories}, db
}

func seedCatalog(t *testing.T, db *store.Collections) {
	t.Helper()
	products := []store.Product{
		{Name: "Wireless Headphones", Description: "noise cancelling audio", Price: 89.99, Category: "electronics", Stock: 50, Featured: true, Tags: []string{"audio"}},
		{Name: "Cotton T-Shirt", Description: "comfortable cotton shirt", Price: 19.99, Category: "clothing", Stock: 100, Featured: true},
		{Name: "Garden Tool Set", Description: "for all your gardening needs", Price: 49.99, Category: "home-garden", Stock: 30, Tags: []string{"tools"}},
		{Name: "Yoga Mat", Description: "non-slip exercise mat", Price: 24.99, Category: "sports", Stock: 60},
	}
	for _, p := range products {
		_, err := db.Products.Create(p)
		require.NoError(t, err)
	}
}

func TestListFilters(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)

	byCategory, err := svc.List(catalog.ListParams{Category: "clothing"})
	require.NoError(t, err)
	require.Len(t, byCategory.Products, 1)
	assert.Equal(t, "Cotton T-Shirt", byCategory.Products[0].Name)

	min, max := 20.0, 60.0
	byPrice, err := svc.List(catalog.ListParams{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, byPrice.Products, 2) // garden set + yoga mat

	featured, err := svc.List(catalog.ListParams{Featured: true})
	require.NoError(t, err)
	assert.Len(t, featured.Products, 2)

	// search matches name, description, and tags
	bySearch, err := svc.List(catalog.ListParams{Search: "tools"})
	require.NoError(t, err)
	require.Len(t, bySearch.Products, 1)
	assert.Equal(t, "Garden Tool Set", bySearch.Products[0].Name)
}

func TestListSortAndPaginate(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)

	asc, err := svc.List(catalog.ListParams{SortBy: "price", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, asc.Products, 4)
	assert.Equal(t, "Cotton T-Shirt", asc.Products[0].Name)
	assert.Equal(t, "Wireless Headphones", asc.Products[3].Name)

	desc, err := svc.List(catalog.ListParams{SortBy: "price", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", desc.Products[0].Name)

	paged, err := svc.List(catalog.ListParams{SortBy: "price", Order: "asc", Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, paged.Total)
	assert.Equal(t, 2, paged.Page)
	assert.Equal(t, 2, paged.TotalPages)
	require.Len(t, paged.Products, 2)
	assert.Equal(t, "Garden Tool Set", paged.Products[0].Name)

	// page past the end is empty, not an error
	empty, err := svc.List(catalog.ListParams{Limit: 2, Page: 9})
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
}

func TestListPriceRange(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)

	result, err := svc.List(catalog.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 19.99, result.Filters.PriceRange.Min)
	assert.Equal(t, 89.99, result.Filters.PriceRange.Max)
}

func TestListDefaultSortNewestFirst(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)

	result, err := svc.List(catalog.ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Products, 4)
	assert.Equal(t, "Yoga Mat", result.Products[0].Name)
}

func TestSearch(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)

	results, err := svc.Search("COTTON")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cotton T-Shirt", results[0].Name)

	none, err := svc.Search("zeppelin")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateCategory("Home & Garden", "outdoor things")
	require.NoError(t, err)
	assert.Equal(t, "home-garden", created.Slug)

	_, err = svc.CreateCategory("Home & Garden", "again")
	assert.ErrorIs(t, err, catalog.ErrCategoryExists)
}

func TestListCategoriesWithCounts(t *testing.T) {
	svc, db := newService(t)
	seedCatalog(t, db)
	_, err := svc.CreateCategory("electronics", "gadgets")
	require.NoError(t, err)
	_, err = svc.CreateCategory("empty", "nothing here")
	require.NoError(t, err)

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 1, categories[0].Count)
	assert.Equal(t, 0, categories[1].Count)
}
