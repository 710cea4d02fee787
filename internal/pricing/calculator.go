// Package pricing derives the financial breakdown of a normalized order.
package pricing

import (
	"fmt"

	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	"github.com/martinezcrafts/shopdesk-backend/pkg/config"
	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// Rates carries the fee and discount configuration. All three values are
// explicit inputs so tests can vary them; nothing here has hidden defaults.
type Rates struct {
	PremiumPackagingFee money.Amount
	HomeDeliveryFee     money.Amount
	PromoDiscountRate   decimal.Decimal
}

// NewRates parses the decimal strings from configuration.
func NewRates(cfg config.PricingConfig) (Rates, error) {
	packagingFee, err := money.FromString(cfg.PremiumPackagingFee)
	if err != nil {
		return Rates{}, fmt.Errorf("premium packaging fee: %w", err)
	}
	if packagingFee.IsNegative() {
		return Rates{}, fmt.Errorf("premium packaging fee cannot be negative: %s", cfg.PremiumPackagingFee)
	}
	deliveryFee, err := money.FromString(cfg.HomeDeliveryFee)
	if err != nil {
		return Rates{}, fmt.Errorf("home delivery fee: %w", err)
	}
	if deliveryFee.IsNegative() {
		return Rates{}, fmt.Errorf("home delivery fee cannot be negative: %s", cfg.HomeDeliveryFee)
	}
	rate, err := decimal.NewFromString(cfg.PromoDiscountRate)
	if err != nil {
		return Rates{}, fmt.Errorf("promo discount rate: %w", err)
	}
	// A rate above 1 would discount more than the subtotal and drive the
	// total negative.
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Rates{}, fmt.Errorf("promo discount rate must be within [0, 1]: %s", cfg.PromoDiscountRate)
	}
	return Rates{
		PremiumPackagingFee: packagingFee,
		HomeDeliveryFee:     deliveryFee,
		PromoDiscountRate:   rate,
	}, nil
}

// PricedOrder is the derived breakdown for one order. It is computed on
// demand and never persisted in place of the Order itself.
type PricedOrder struct {
	Order              *orders.Order
	Subtotal           money.Amount
	Discount           money.Amount
	PackagingSurcharge money.Amount
	ShippingSurcharge  money.Amount
	Total              money.Amount
}

// Price computes the breakdown. It is deterministic and total: malformed
// input was already rejected by normalization, so there is no error path.
// Rounding happens twice, at the subtotal and at the final total, so the
// displayed subtotal always equals the sum of the displayed line items.
func Price(order *orders.Order, rates Rates) PricedOrder {
	subtotal := money.Zero()
	for _, item := range order.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	subtotal = subtotal.RoundCents()

	var packaging, shipping, discount money.Amount
	if order.PackagingTier == enums.PackagingTierPremium {
		packaging = rates.PremiumPackagingFee
	}
	if order.ShippingMethod == enums.ShippingMethodHome {
		shipping = rates.HomeDeliveryFee
	}
	if order.PromoApplied {
		discount = subtotal.MulRate(rates.PromoDiscountRate).RoundCents()
	}

	total := subtotal.Sub(discount).Add(packaging).Add(shipping).RoundCents()

	return PricedOrder{
		Order:              order,
		Subtotal:           subtotal,
		Discount:           discount,
		PackagingSurcharge: packaging,
		ShippingSurcharge:  shipping,
		Total:              total,
	}
}
