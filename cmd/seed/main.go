// Seeds the data directory with the sample shop dataset: an admin and a
// customer account, five categories, five products, and one historical
// delivered order.
package main

import (
	"log"
	"time"

	"github.com/arkka/go-shop-api/internal/auth"
	"github.com/arkka/go-shop-api/internal/config"
	"github.com/arkka/go-shop-api/internal/orders"
	"github.com/arkka/go-shop-api/internal/pricing"
	"github.com/arkka/go-shop-api/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	db := store.Open(cfg.DataDir)

	log.Println("seeding database...")

	// start clean
	for _, clear := range []func() error{
		func() error { return db.Users.Write(nil) },
		func() error { return db.Products.Write(nil) },
		func() error { return db.Categories.Write(nil) },
		func() error { return db.Orders.Write(nil) },
		func() error { return db.Carts.Write(nil) },
		func() error { return db.Reviews.Write(nil) },
	} {
		if err := clear(); err != nil {
			log.Fatalf("clear collection: %v", err)
		}
	}

	_, err := db.Users.Create(store.User{
		Name:     "Admin User",
		Email:    "admin@shop.com",
		Password: mustHash("admin123"),
		Role:     store.RoleAdmin,
		Address: store.Address{
			Street: "123 Admin St", City: "Admin City", State: "AC",
			ZipCode: "12345", Country: "Adminland",
		},
		Phone:    "+1234567890",
		Wishlist: []string{},
		Orders:   []string{},
	})
	if err != nil {
		log.Fatalf("create admin: %v", err)
	}

	customer, err := db.Users.Create(store.User{
		Name:     "John Customer",
		Email:    "customer@shop.com",
		Password: mustHash("customer123"),
		Role:     store.RoleCustomer,
		Address: store.Address{
			Street: "456 Customer Ave", City: "Customer City", State: "CC",
			ZipCode: "67890", Country: "Customerland",
		},
		Phone:    "+0987654321",
		Wishlist: []string{},
		Orders:   []string{},
	})
	if err != nil {
		log.Fatalf("create customer: %v", err)
	}

	categories := []store.Category{
		{Name: "Electronics", Slug: "electronics", Description: "Electronic devices and accessories"},
		{Name: "Clothing", Slug: "clothing", Description: "Fashion and apparel"},
		{Name: "Home & Garden", Slug: "home-garden", Description: "Home improvement and garden supplies"},
		{Name: "Books", Slug: "books", Description: "Books and magazines"},
		{Name: "Sports", Slug: "sports", Description: "Sports equipment and accessories"},
	}
	for _, c := range categories {
		if _, err := db.Categories.Create(c); err != nil {
			log.Fatalf("create category %s: %v", c.Name, err)
		}
	}

	products := []store.Product{
		{
			Name:         "Wireless Bluetooth Headphones",
			Description:  "High-quality wireless headphones with noise cancellation",
			Price:        89.99,
			ComparePrice: 129.99,
			Category:     "electronics",
			Tags:         []string{"audio", "wireless", "bluetooth"},
			Images:       []store.Image{{URL: "/images/headphones.jpg", AltText: "Wireless Headphones"}},
			Stock:        50,
			SKU:          "ELEC-001",
			Featured:     true,
			Ratings:      store.Ratings{Average: 4.5, Count: 120},
		},
		{
			Name:         "Cotton T-Shirt",
			Description:  "100% cotton comfortable t-shirt",
			Price:        19.99,
			ComparePrice: 24.99,
			Category:     "clothing",
			Tags:         []string{"clothing", "tshirt", "cotton"},
			Images:       []store.Image{{URL: "/images/tshirt.jpg", AltText: "Cotton T-Shirt"}},
			Stock:        100,
			SKU:          "CLOTH-001",
			Featured:     true,
			Ratings:      store.Ratings{Average: 4.2, Count: 85},
		},
		{
			Name:         "Garden Tool Set",
			Description:  "Complete garden tool set for all your gardening needs",
			Price:        49.99,
			ComparePrice: 69.99,
			Category:     "home-garden",
			Tags:         []string{"garden", "tools", "outdoor"},
			Images:       []store.Image{{URL: "/images/garden-tools.jpg", AltText: "Garden Tool Set"}},
			Stock:        30,
			SKU:          "HOME-001",
			Featured:     false,
			Ratings:      store.Ratings{Average: 4.7, Count: 45},
		},
		{
			Name:         "JavaScript Programming Book",
			Description:  "Learn JavaScript from beginner to advanced",
			Price:        29.99,
			ComparePrice: 39.99,
			Category:     "books",
			Tags:         []string{"books", "programming", "javascript"},
			Images:       []store.Image{{URL: "/images/js-book.jpg", AltText: "JavaScript Book"}},
			Stock:        75,
			SKU:          "BOOK-001",
			Featured:     true,
			Ratings:      store.Ratings{Average: 4.8, Count: 210},
		},
		{
			Name:         "Yoga Mat",
			Description:  "Non-slip yoga mat for all exercises",
			Price:        24.99,
			ComparePrice: 34.99,
			Category:     "sports",
			Tags:         []string{"sports", "yoga", "fitness"},
			Images:       []store.Image{{URL: "/images/yoga-mat.jpg", AltText: "Yoga Mat"}},
			Stock:        60,
			SKU:          "SPORT-001",
			Featured:     false,
			Ratings:      store.Ratings{Average: 4.3, Count: 95},
		},
	}
	for _, p := range products {
		if _, err := db.Products.Create(p); err != nil {
			log.Fatalf("create product %s: %v", p.SKU, err)
		}
	}

	if err := seedOrder(db, customer); err != nil {
		log.Fatalf("create sample order: %v", err)
	}

	log.Println("database seeded")
	log.Println("admin credentials: admin@shop.com / admin123")
	log.Println("customer credentials: customer@shop.com / customer123")

	for name, s := range map[string]func() (int, error){
		"users":      func() (int, error) { return db.Users.Count(nil) },
		"products":   func() (int, error) { return db.Products.Count(nil) },
		"categories": func() (int, error) { return db.Categories.Count(nil) },
		"orders":     func() (int, error) { return db.Orders.Count(nil) },
	} {
		n, err := s()
		if err != nil {
			log.Fatalf("count %s: %v", name, err)
		}
		log.Printf("%s: %d", name, n)
	}
}

// seedOrder writes one week-old delivered order for the first two products.
func seedOrder(db *store.Collections, customer store.User) error {
	all, err := db.Products.Read()
	if err != nil {
		return err
	}
	items := make([]store.OrderItem, 0, 2)
	var subtotal float64
	for _, p := range all[:2] {
		lineTotal := pricing.Round2(p.Price * 2)
		items = append(items, store.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  2,
			Image:     &p.Images[0],
			Total:     lineTotal,
		})
		subtotal += lineTotal
	}
	sum := pricing.Compute(subtotal)

	order, err := db.Orders.Create(store.Order{
		OrderNumber:     orders.NewOrderNumber(),
		UserID:          customer.ID,
		Items:           items,
		ShippingAddress: customer.Address,
		BillingAddress:  customer.Address,
		PaymentMethod:   "card",
		Status:          store.OrderDelivered,
		PaymentStatus:   store.PaymentPaid,
		Subtotal:        sum.Subtotal,
		Shipping:        sum.Shipping,
		Tax:             sum.Tax,
		Total:           sum.Total,
	})
	if err != nil {
		return err
	}
	// backdate so analytics has history to chart; Update pins createdAt, so
	// rewrite the collection directly
	allOrders, err := db.Orders.Read()
	if err != nil {
		return err
	}
	for i := range allOrders {
		if allOrders[i].ID == order.ID {
			allOrders[i].CreatedAt = time.Now().UTC().Add(-7 * 24 * time.Hour)
			allOrders[i].UpdatedAt = time.Now().UTC().Add(-6 * 24 * time.Hour)
		}
	}
	if err := db.Orders.Write(allOrders); err != nil {
		return err
	}
	_, err = db.Users.Update(customer.ID, func(u *store.User) {
		u.Orders = append(u.Orders, order.ID)
	})
	return err
}

func mustHash(plain string) string {
	h, err := auth.HashPassword(plain)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	return h
}
