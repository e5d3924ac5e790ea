package admin_test

import (
	"testing"
	"time"

	"github.com/arkka/go-shop-api/internal/admin"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*admin.Service, *store.Collections) {
	t.Helper()
	db := store.Open(t.TempDir())
	return &admin.Service{
		Users:      db.Users,
		Products:   db.Products,
		Orders:     db.Orders,
		Categories: db.Categories,
	}, db
}

func seedOrders(t *testing.T, db *store.Collections, ages []time.Duration, totals []float64) {
	t.Helper()
	now := time.Now().UTC()
	var all []store.Order
	for i := range ages {
		status := store.OrderPending
		if i%2 == 1 {
			status = store.OrderDelivered
		}
		all = append(all, store.Order{
			Meta:   store.Meta{ID: "o" + string(rune('a'+i)), CreatedAt: now.Add(-ages[i]), UpdatedAt: now},
			Status: status,
			Total:  totals[i],
		})
	}
	require.NoError(t, db.Orders.Write(all))
}

func TestStats(t *testing.T) {
	svc, db := newService(t)

	_, err := db.Users.Create(store.User{Name: "Admin", Role: store.RoleAdmin})
	require.NoError(t, err)
	_, err = db.Users.Create(store.User{Name: "Customer", Role: store.RoleCustomer})
	require.NoError(t, err)
	_, err = db.Products.Create(store.Product{Name: "Scarce", Stock: 3})
	require.NoError(t, err)
	_, err = db.Products.Create(store.Product{Name: "Plenty", Stock: 80})
	require.NoError(t, err)
	_, err = db.Categories.Create(store.Category{Name: "Books"})
	require.NoError(t, err)
	seedOrders(t, db,
		[]time.Duration{time.Hour, 2 * time.Hour},
		[]float64{27.59, 59.38},
	)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 86.97, stats.TotalSales)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 1, stats.TotalCategories)
	require.Len(t, stats.RecentOrders, 2)
	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, "Scarce", stats.LowStockProducts[0].Name)
}

func TestAnalyticsPeriods(t *testing.T) {
	svc, db := newService(t)
	seedOrders(t, db,
		[]time.Duration{
			2 * 24 * time.Hour,   // this week
			20 * 24 * time.Hour,  // this month
			200 * 24 * time.Hour, // this year
			500 * 24 * time.Hour, // older
		},
		[]float64{10, 20, 30, 40},
	)
	now := time.Now().UTC()

	tests := []struct {
		period     string
		wantOrders int
		wantSales  float64
	}{
		{"week", 1, 10},
		{"month", 2, 30},
		{"year", 3, 60},
		{"all", 4, 100},
		{"bogus", 4, 100}, // unknown period falls back to all
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			got, err := svc.Analytics(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrders, got.TotalOrders)
			assert.Equal(t, tt.wantSales, got.TotalSales)
		})
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	svc, db := newService(t)
	seedOrders(t, db,
		[]time.Duration{time.Hour, 2 * time.Hour, 25 * time.Hour},
		[]float64{10, 20, 30},
	)
	now := time.Now().UTC()

	got, err := svc.Analytics("all", now)
	require.NoError(t, err)
	assert.Equal(t, "all", got.Period)
	assert.Equal(t, 20.0, got.AverageOrderValue)
	assert.Equal(t, 2, got.OrdersByStatus[store.OrderPending])
	assert.Equal(t, 1, got.OrdersByStatus[store.OrderDelivered])
	// grouped by calendar day, oldest first
	require.Len(t, got.SalesByDay, 2)
	assert.Less(t, got.SalesByDay[0].Date, got.SalesByDay[1].Date)
}

func TestAnalyticsEmpty(t *testing.T) {
	svc, _ := newService(t)
	got, err := svc.Analytics("month", time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.AverageOrderValue)
	assert.Empty(t, got.SalesByDay)
}
