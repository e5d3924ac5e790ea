package orders

import "github.com/arkka/go-shop-api/internal/store"

// Forward-only lattice. Cancellation is only reachable from pending;
// delivered and cancelled are terminal.
var validNext = map[store.OrderStatus]map[store.OrderStatus]bool{
	store.OrderPending:    {store.OrderProcessing: true, store.OrderCancelled: true},
	store.OrderProcessing: {store.OrderShipped: true},
	store.OrderShipped:    {store.OrderDelivered: true},
	store.OrderDelivered:  {},
	store.OrderCancelled:  {},
}

func CanTransition(from, to store.OrderStatus) bool {
	return validNext[from][to]
}

func ValidStatus(s store.OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}
