// Package pricing holds the totals math shared by the cart view and order
// placement.
package pricing

import "math"

const (
	// FreeShippingOver is the subtotal above which shipping is free.
	FreeShippingOver = 50.0
	// FlatShipping applies below the free-shipping threshold.
	FlatShipping = 5.99
	// TaxRate is applied to the subtotal.
	TaxRate = 0.08
)

type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Compute derives shipping, tax, and total from a subtotal. Tax and total
// are rounded to cents.
func Compute(subtotal float64) Summary {
	subtotal = Round2(subtotal)
	shipping := FlatShipping
	if subtotal > FreeShippingOver {
		shipping = 0
	}
	tax := Round2(subtotal * TaxRate)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    Round2(subtotal + shipping + tax),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
