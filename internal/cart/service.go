// Package cart implements the cart workflow: a live-priced view plus
// add/update/remove/clear mutations against the carts collection.
package cart

import (
	"errors"
	"fmt"
	"time"

	"github.com/arkka/go-shop-api/internal/pricing"
	"github.com/arkka/go-shop-api/internal/store"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrItemNotFound      = errors.New("item not found in cart")
)

type Service struct {
	Carts    *store.Store[store.Cart, *store.Cart]
	Products *store.Store[store.Product, *store.Product]
}

// LineProduct is the live product snapshot shown on a cart line. Nil when
// the product no longer exists; such lines price at zero but stay in the
// cart.
type LineProduct struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Price  float64       `json:"price"`
	Images []store.Image `json:"images"`
	Stock  int           `json:"stock"`
}

type Line struct {
	ProductID string       `json:"productId"`
	Quantity  int          `json:"quantity"`
	AddedAt   time.Time    `json:"addedAt"`
	Product   *LineProduct `json:"product"`
}

type View struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []Line          `json:"items"`
	Summary   pricing.Summary `json:"summary"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// View returns the user's cart with each line re-priced against the current
// product record. Creates an empty cart on first access.
func (s *Service) View(userID string) (View, error) {
	c, err := s.getOrCreate(userID)
	if err != nil {
		return View{}, err
	}

	lines := make([]Line, 0, len(c.Items))
	var subtotal float64
	for _, item := range c.Items {
		line := Line{ProductID: item.ProductID, Quantity: item.Quantity, AddedAt: item.AddedAt}
		p, err := s.Products.FindByID(item.ProductID)
		switch {
		case err == nil:
			line.Product = &LineProduct{
				ID:     p.ID,
				Name:   p.Name,
				Price:  p.Price,
				Images: p.Images,
				Stock:  p.Stock,
			}
			subtotal += p.Price * float64(item.Quantity)
		case errors.Is(err, store.ErrNotFound):
			// deleted product: line stays, contributes nothing
		default:
			return View{}, err
		}
		lines = append(lines, line)
	}

	return View{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     lines,
		Summary:   pricing.Compute(subtotal),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

// Add puts quantity of the product in the user's cart, incrementing the
// existing line if there is one. The requested quantity is checked against
// current stock; the cumulative line quantity is not.
func (s *Service) Add(userID, productID string, quantity int) (store.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.Products.FindByID(productID)
	if err != nil {
		return store.Cart{}, fmt.Errorf("product %s: %w", productID, err)
	}
	if p.Stock < quantity {
		return store.Cart{}, ErrInsufficientStock
	}

	c, err := s.getOrCreate(userID)
	if err != nil {
		return store.Cart{}, err
	}
	return s.Carts.Update(c.ID, func(c *store.Cart) {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity += quantity
				return
			}
		}
		c.Items = append(c.Items, store.CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	})
}

// UpdateQuantity replaces a line's quantity after re-checking stock. A
// quantity below 1 removes the line.
func (s *Service) UpdateQuantity(userID, productID string, quantity int) (store.Cart, error) {
	if quantity < 1 {
		return s.Remove(userID, productID)
	}
	p, err := s.Products.FindByID(productID)
	if err != nil {
		return store.Cart{}, fmt.Errorf("product %s: %w", productID, err)
	}
	if p.Stock < quantity {
		return store.Cart{}, ErrInsufficientStock
	}

	c, err := s.find(userID)
	if err != nil {
		return store.Cart{}, err
	}
	if !hasLine(c, productID) {
		// bail before Update so an absent line does not touch the cart
		return store.Cart{}, ErrItemNotFound
	}
	return s.Carts.Update(c.ID, func(c *store.Cart) {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity = quantity
				return
			}
		}
	})
}

func hasLine(c store.Cart, productID string) bool {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Remove drops the line for productID. Removing an absent line is a no-op.
func (s *Service) Remove(userID, productID string) (store.Cart, error) {
	c, err := s.find(userID)
	if err != nil {
		return store.Cart{}, err
	}
	return s.Carts.Update(c.ID, func(c *store.Cart) {
		items := c.Items[:0]
		for _, item := range c.Items {
			if item.ProductID != productID {
				items = append(items, item)
			}
		}
		c.Items = items
	})
}

// Clear empties the cart.
func (s *Service) Clear(userID string) (store.Cart, error) {
	c, err := s.find(userID)
	if err != nil {
		return store.Cart{}, err
	}
	return s.Carts.Update(c.ID, func(c *store.Cart) {
		c.Items = []store.CartItem{}
	})
}

func (s *Service) find(userID string) (store.Cart, error) {
	c, ok, err := s.Carts.FindOne(func(c store.Cart) bool { return c.UserID == userID })
	if err != nil {
		return store.Cart{}, err
	}
	if !ok {
		return store.Cart{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Service) getOrCreate(userID string) (store.Cart, error) {
	c, ok, err := s.Carts.FindOne(func(c store.Cart) bool { return c.UserID == userID })
	if err != nil {
		return store.Cart{}, err
	}
	if ok {
		return c, nil
	}
	return s.Carts.Create(store.Cart{UserID: userID, Items: []store.CartItem{}})
}
