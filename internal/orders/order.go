// Package orders defines the canonical Order entity and the normalization of
// raw checkout submissions into it.
package orders

import (
	"strings"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
)

// Customer identifies who placed the order. Email is always present on a
// normalized order; name and phone may be empty.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Address is the optional structured postal address. Any field may be empty.
type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Zip     string
	Country string
}

// IsZero reports whether every field is empty.
func (a Address) IsZero() bool {
	return a == Address{}
}

// OneLine joins the non-empty parts for row-store and receipt rendering.
func (a Address) OneLine() string {
	parts := make([]string, 0, 6)
	for _, p := range []string{a.Line1, a.Line2, a.City, a.State, a.Zip, a.Country} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// CartItem is one normalized cart line. LineTotal is always derived during
// normalization; the server never trusts a client-supplied subtotal.
type CartItem struct {
	Name          string
	Quantity      int
	LineTotal     money.Amount
	Customization string
}

// Order is the immutable record of one customer's purchase intent. It is
// constructed once by Normalize and never mutated afterwards.
type Order struct {
	ID             string
	CreatedAt      time.Time
	Customer       Customer
	Address        *Address
	Items          []CartItem
	PackagingTier  enums.PackagingTier
	ShippingMethod enums.ShippingMethod
	PaymentMethod  enums.PaymentMethod
	PromoApplied   bool
	Notes          string
}
