package store

// Collections bundles the six entity stores. Built once at startup and
// passed by reference to whatever needs persistence.
type Collections struct {
	Users      *Store[User, *User]
	Products   *Store[Product, *Product]
	Orders     *Store[Order, *Order]
	Categories *Store[Category, *Category]
	Carts      *Store[Cart, *Cart]
	Reviews    *Store[Review, *Review]
}

// Open wires every collection to its JSON file under dir.
func Open(dir string) *Collections {
	return &Collections{
		Users:      New[User](dir, "users.json"),
		Products:   New[Product](dir, "products.json"),
		Orders:     New[Order](dir, "orders.json"),
		Categories: New[Category](dir, "categories.json"),
		Carts:      New[Cart](dir, "carts.json"),
		Reviews:    New[Review](dir, "reviews.json"),
	}
}
