package orders

import (
	"strings"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
)

// Normalize validates a raw submission and builds the canonical Order. It is
// a pure transformation: no side effects, and the same submission with the
// same clock always produces the same Order apart from the generated ID.
func Normalize(sub Submission, now time.Time) (*Order, error) {
	email := strings.TrimSpace(sub.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer email is required")
	}

	rawItems := sub.lineItems()
	if len(rawItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one cart item is required")
	}

	rawPayment := strings.ToLower(strings.TrimSpace(sub.PaymentMethod))
	if rawPayment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	payment, err := enums.ParsePaymentMethod(rawPayment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unrecognized payment method").
			WithDetails(map[string]string{"paymentMethod": rawPayment})
	}

	packaging := enums.PackagingTierStandard
	if raw := strings.ToLower(strings.TrimSpace(sub.packaging())); raw != "" {
		packaging, err = enums.ParsePackagingTier(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unrecognized packaging tier").
				WithDetails(map[string]string{"packagingTier": raw})
		}
	}

	shipping := enums.ShippingMethodCentral
	if raw := strings.ToLower(strings.TrimSpace(sub.shipping())); raw != "" {
		shipping, err = enums.ParseShippingMethod(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unrecognized shipping method").
				WithDetails(map[string]string{"shippingMethod": raw})
		}
	}

	items := make([]CartItem, 0, len(rawItems))
	for i, raw := range rawItems {
		item, err := normalizeItem(raw, i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var address *Address
	if sub.Address != nil {
		candidate := Address{
			Line1:   strings.TrimSpace(sub.Address.Line1),
			Line2:   strings.TrimSpace(sub.Address.Line2),
			City:    strings.TrimSpace(sub.Address.City),
			State:   strings.TrimSpace(sub.Address.State),
			Zip:     strings.TrimSpace(sub.Address.Zip),
			Country: strings.TrimSpace(sub.Address.Country),
		}
		if !candidate.IsZero() {
			address = &candidate
		}
	}

	return &Order{
		ID:        NewOrderID(now),
		CreatedAt: now.UTC(),
		Customer: Customer{
			Name:  strings.TrimSpace(sub.Name),
			Email: email,
			Phone: strings.TrimSpace(sub.Phone),
		},
		Address:        address,
		Items:          items,
		PackagingTier:  packaging,
		ShippingMethod: shipping,
		PaymentMethod:  payment,
		PromoApplied:   sub.promo(),
		Notes:          strings.TrimSpace(sub.Notes),
	}, nil
}

func normalizeItem(raw ItemInput, index int) (CartItem, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return CartItem{}, itemError(index, "item name is required")
	}

	quantity := 1
	if raw.Quantity != nil {
		if *raw.Quantity <= 0 {
			return CartItem{}, itemError(index, "item quantity must be positive")
		}
		quantity = *raw.Quantity
	}

	// Line total precedence: an explicit totalPrice wins, otherwise the unit
	// price is scaled by quantity. One of the two must be present.
	var lineTotal money.Amount
	switch {
	case raw.TotalPrice != nil:
		lineTotal = money.FromFloat(*raw.TotalPrice)
	case raw.Price != nil:
		lineTotal = money.FromFloat(*raw.Price).MulInt(quantity)
	default:
		return CartItem{}, itemError(index, "item price is required")
	}
	if lineTotal.IsNegative() {
		return CartItem{}, itemError(index, "item price cannot be negative")
	}

	return CartItem{
		Name:          name,
		Quantity:      quantity,
		LineTotal:     lineTotal.RoundCents(),
		Customization: strings.TrimSpace(raw.Customization),
	}, nil
}

func itemError(index int, message string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).
		WithDetails(map[string]int{"itemIndex": index})
}
