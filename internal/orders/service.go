// Package orders implements order placement, cancellation, and the status
// lattice.
package orders

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/arkka/go-shop-api/internal/pricing"
	"github.com/arkka/go-shop-api/internal/store"
)

var (
	ErrEmptyOrder        = errors.New("no items in order")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNotOwner          = errors.New("not authorized for this order")
	ErrInvalidTransition = errors.New("order cannot change to that status")
)

// InsufficientStockError names the product that cannot be fulfilled.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type PlaceInput struct {
	UserID          string
	Items           []ItemInput
	ShippingAddress store.Address
	PaymentMethod   string
	Notes           string
}

type Service struct {
	Orders   *store.Store[store.Order, *store.Order]
	Products *store.Store[store.Product, *store.Product]
	Users    *store.Store[store.User, *store.User]
}

// Place validates every line against live stock before touching anything,
// then decrements stock, snapshots the lines, and persists the order. A
// failing line leaves all stock as it was.
func (s *Service) Place(in PlaceInput) (store.Order, error) {
	if len(in.Items) == 0 {
		return store.Order{}, ErrEmptyOrder
	}

	// validation pass: resolve each product once and stock-check the
	// quantity summed across every line naming it, so duplicate lines
	// cannot each pass against the same stock
	needed := make(map[string]int, len(in.Items))
	resolved := make(map[string]store.Product, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < 1 {
			return store.Order{}, fmt.Errorf("product %s: %w", item.ProductID, ErrInvalidQuantity)
		}
		p, ok := resolved[item.ProductID]
		if !ok {
			var err error
			p, err = s.Products.FindByID(item.ProductID)
			if err != nil {
				return store.Order{}, fmt.Errorf("product %s: %w", item.ProductID, err)
			}
			resolved[item.ProductID] = p
		}
		needed[item.ProductID] += item.Quantity
		if p.Stock < needed[item.ProductID] {
			return store.Order{}, &InsufficientStockError{
				ProductID: p.ID,
				Name:      p.Name,
				Requested: needed[item.ProductID],
				Available: p.Stock,
			}
		}
	}

	// commit pass: decrement each product once, re-checking stock inside
	// the mutate so a concurrent placement between the two passes cannot
	// drive it negative; a shortfall restores the decrements already made
	decremented := make([]string, 0, len(needed))
	done := make(map[string]bool, len(needed))
	for _, item := range in.Items {
		if done[item.ProductID] {
			continue
		}
		done[item.ProductID] = true
		qty := needed[item.ProductID]

		var short *InsufficientStockError
		if _, err := s.Products.Update(item.ProductID, func(p *store.Product) {
			if p.Stock < qty {
				short = &InsufficientStockError{
					ProductID: p.ID,
					Name:      p.Name,
					Requested: qty,
					Available: p.Stock,
				}
				return
			}
			p.Stock -= qty
		}); err != nil {
			s.restoreStock(decremented, needed)
			return store.Order{}, fmt.Errorf("decrement stock for %s: %w", item.ProductID, err)
		}
		if short != nil {
			s.restoreStock(decremented, needed)
			return store.Order{}, short
		}
		decremented = append(decremented, item.ProductID)
	}

	// snapshot pass: one order line per input line, priced as validated
	items := make([]store.OrderItem, 0, len(in.Items))
	var subtotal float64
	for _, item := range in.Items {
		p := resolved[item.ProductID]
		lineTotal := pricing.Round2(p.Price * float64(item.Quantity))
		var image *store.Image
		if len(p.Images) > 0 {
			image = &p.Images[0]
		}
		items = append(items, store.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  item.Quantity,
			Image:     image,
			Total:     lineTotal,
		})
		subtotal += lineTotal
	}

	sum := pricing.Compute(subtotal)
	order, err := s.Orders.Create(store.Order{
		OrderNumber:     NewOrderNumber(),
		UserID:          in.UserID,
		Items:           items,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          store.OrderPending,
		PaymentStatus:   store.PaymentPending,
		Subtotal:        sum.Subtotal,
		Shipping:        sum.Shipping,
		Tax:             sum.Tax,
		Total:           sum.Total,
		Notes:           in.Notes,
	})
	if err != nil {
		return store.Order{}, err
	}

	// link the order to its user; a missing user is not fatal
	if _, err := s.Users.Update(in.UserID, func(u *store.User) {
		u.Orders = append(u.Orders, order.ID)
	}); err != nil && !errors.Is(err, store.ErrNotFound) {
		return store.Order{}, err
	}
	return order, nil
}

// restoreStock undoes the decrements already applied when a later line of
// the same placement cannot be fulfilled. Best effort.
func (s *Service) restoreStock(ids []string, qty map[string]int) {
	for _, id := range ids {
		n := qty[id]
		_, _ = s.Products.Update(id, func(p *store.Product) {
			p.Stock += n
		})
	}
}

// Cancel transitions a pending order to cancelled and restores stock for
// each line. Only the placing user may cancel. Products deleted since
// placement are skipped.
func (s *Service) Cancel(orderID, userID string) (store.Order, error) {
	order, err := s.Orders.FindByID(orderID)
	if err != nil {
		return store.Order{}, err
	}
	if order.UserID != userID {
		return store.Order{}, ErrNotOwner
	}
	if !CanTransition(order.Status, store.OrderCancelled) {
		return store.Order{}, ErrInvalidTransition
	}

	for _, item := range order.Items {
		_, err := s.Products.Update(item.ProductID, func(p *store.Product) {
			p.Stock += item.Quantity
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return store.Order{}, err
		}
	}
	return s.Orders.Update(orderID, func(o *store.Order) {
		o.Status = store.OrderCancelled
	})
}

// SetStatus moves an order along the lattice. Illegal jumps are rejected,
// admin or not.
func (s *Service) SetStatus(orderID string, status store.OrderStatus) (store.Order, error) {
	if !ValidStatus(status) {
		return store.Order{}, ErrInvalidTransition
	}
	order, err := s.Orders.FindByID(orderID)
	if err != nil {
		return store.Order{}, err
	}
	if !CanTransition(order.Status, status) {
		return store.Order{}, ErrInvalidTransition
	}
	return s.Orders.Update(orderID, func(o *store.Order) {
		o.Status = status
	})
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(userID string) ([]store.Order, error) {
	out, err := s.Orders.FindAll(func(o store.Order) bool { return o.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber builds the human-facing order number:
// ORD-<epoch-millis>-<9 random base36 chars>.
func NewOrderNumber() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36))))
		if err != nil {
			panic(err) // crypto/rand does not fail on supported platforms
		}
		suffix[i] = base36[n.Int64()]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
