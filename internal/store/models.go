package store

import "time"

// Roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// OrderStatus is a closed set; legal transitions live in the orders package.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// PaymentStatus values.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// User is the stored shape, hashed password included. Handlers only ever
// encode PublicUser.
type User struct {
	Meta
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Address  Address  `json:"address"`
	Phone    string   `json:"phone"`
	Wishlist []string `json:"wishlist"`
	Orders   []string `json:"orders"`
}

// PublicUser is User minus the credential.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Address   Address   `json:"address"`
	Phone     string    `json:"phone"`
	Wishlist  []string  `json:"wishlist"`
	Orders    []string  `json:"orders"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Address:   u.Address,
		Phone:     u.Phone,
		Wishlist:  u.Wishlist,
		Orders:    u.Orders,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type Ratings struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Product struct {
	Meta
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ComparePrice float64  `json:"comparePrice,omitempty"`
	Category     string   `json:"category"`
	Stock        int      `json:"stock"`
	SKU          string   `json:"sku"`
	Tags         []string `json:"tags"`
	Featured     bool     `json:"featured"`
	Ratings      Ratings  `json:"ratings"`
	Images       []Image  `json:"images"`
}

type Category struct {
	Meta
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CartItem struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart holds one user's cart; one cart per user by convention.
type Cart struct {
	Meta
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

// OrderItem is a snapshot taken at order time, not a live reference.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     *Image  `json:"image"`
	Total     float64 `json:"total"`
}

type Order struct {
	Meta
	OrderNumber     string      `json:"orderNumber"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	ShippingAddress Address     `json:"shippingAddress"`
	BillingAddress  Address     `json:"billingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	Status          OrderStatus `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	Subtotal        float64     `json:"subtotal"`
	Shipping        float64     `json:"shipping"`
	Tax             float64     `json:"tax"`
	Total           float64     `json:"total"`
	Notes           string      `json:"notes,omitempty"`
}

type Review struct {
	Meta
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
