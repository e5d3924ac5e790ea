// Package admin derives the dashboard stats and sales analytics from the
// raw collections.
package admin

import (
	"sort"
	"time"

	"github.com/arkka/go-shop-api/internal/pricing"
	"github.com/arkka/go-shop-api/internal/store"
)

const lowStockThreshold = 10

type Stats struct {
	TotalSales       float64         `json:"totalSales"`
	TotalOrders      int             `json:"totalOrders"`
	TotalProducts    int             `json:"totalProducts"`
	TotalCustomers   int             `json:"totalCustomers"`
	TotalCategories  int             `json:"totalCategories"`
	RecentOrders     []store.Order   `json:"recentOrders"`
	LowStockProducts []store.Product `json:"lowStockProducts"`
}

type DaySales struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type Analytics struct {
	Period            string                    `json:"period"`
	TotalOrders       int                       `json:"totalOrders"`
	TotalSales        float64                   `json:"totalSales"`
	AverageOrderValue float64                   `json:"averageOrderValue"`
	OrdersByStatus    map[store.OrderStatus]int `json:"ordersByStatus"`
	SalesByDay        []DaySales                `json:"salesByDay"`
}

type Service struct {
	Users      *store.Store[store.User, *store.User]
	Products   *store.Store[store.Product, *store.Product]
	Orders     *store.Store[store.Order, *store.Order]
	Categories *store.Store[store.Category, *store.Category]
}

// Stats builds the dashboard summary: totals, the five most recent orders,
// and up to five low-stock products.
func (s *Service) Stats() (Stats, error) {
	users, err := s.Users.Read()
	if err != nil {
		return Stats{}, err
	}
	products, err := s.Products.Read()
	if err != nil {
		return Stats{}, err
	}
	orders, err := s.Orders.Read()
	if err != nil {
		return Stats{}, err
	}
	categoryCount, err := s.Categories.Count(nil)
	if err != nil {
		return Stats{}, err
	}

	var sales float64
	for _, o := range orders {
		sales += o.Total
	}
	customers := 0
	for _, u := range users {
		if u.Role == store.RoleCustomer {
			customers++
		}
	}

	recent := make([]store.Order, 0, 5)
	for i := len(orders) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, orders[i])
	}
	low := make([]store.Product, 0, 5)
	for _, p := range products {
		if p.Stock < lowStockThreshold {
			low = append(low, p)
			if len(low) == 5 {
				break
			}
		}
	}

	return Stats{
		TotalSales:       pricing.Round2(sales),
		TotalOrders:      len(orders),
		TotalProducts:    len(products),
		TotalCustomers:   customers,
		TotalCategories:  categoryCount,
		RecentOrders:     recent,
		LowStockProducts: low,
	}, nil
}

// Analytics aggregates orders over the requested period: week, month, year,
// or all.
func (s *Service) Analytics(period string, now time.Time) (Analytics, error) {
	orders, err := s.Orders.Read()
	if err != nil {
		return Analytics{}, err
	}

	var cutoff time.Time
	switch period {
	case "week":
		cutoff = now.Add(-7 * 24 * time.Hour)
	case "month":
		cutoff = now.Add(-30 * 24 * time.Hour)
	case "year":
		cutoff = now.Add(-365 * 24 * time.Hour)
	default:
		period = "all"
	}

	var (
		sales    float64
		count    int
		byStatus = map[store.OrderStatus]int{}
		byDay    = map[string]float64{}
	)
	for _, o := range orders {
		if !cutoff.IsZero() && !o.CreatedAt.After(cutoff) {
			continue
		}
		count++
		sales += o.Total
		byStatus[o.Status]++
		byDay[o.CreatedAt.UTC().Format("2006-01-02")] += o.Total
	}

	days := make([]DaySales, 0, len(byDay))
	for date, total := range byDay {
		days = append(days, DaySales{Date: date, Sales: pricing.Round2(total)})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	avg := 0.0
	if count > 0 {
		avg = sales / float64(count)
	}
	return Analytics{
		Period:            period,
		TotalOrders:       count,
		TotalSales:        pricing.Round2(sales),
		AverageOrderValue: pricing.Round2(avg),
		OrdersByStatus:    byStatus,
		SalesByDay:        days,
	}, nil
}
