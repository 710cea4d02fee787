package orders

// Submission is the raw checkout payload as clients send it. Several fields
// arrived under two names from different frontend revisions; both spellings
// are accepted and unknown fields are ignored during decoding.
type Submission struct {
	Name    string        `json:"name"`
	Email   string        `json:"email" validate:"omitempty,email"`
	Phone   string        `json:"phone"`
	Address *AddressInput `json:"address"`

	Items []ItemInput `json:"items"`
	Cart  []ItemInput `json:"cart"`

	PromoApplied *bool `json:"promoApplied"`
	AppliedPromo *bool `json:"appliedPromo"`

	PackagingTier     string `json:"packagingTier"`
	SelectedPackaging string `json:"selectedPackaging"`

	ShippingMethod   string `json:"shippingMethod"`
	SelectedShipping string `json:"selectedShipping"`

	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type AddressInput struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// ItemInput is one raw cart line. TotalPrice is the client's line total and
// takes precedence; Price is a unit price multiplied by quantity otherwise.
type ItemInput struct {
	Name          string   `json:"name"`
	Quantity      *int     `json:"quantity"`
	TotalPrice    *float64 `json:"totalPrice"`
	Price         *float64 `json:"price"`
	Customization string   `json:"customization"`
}

// lineItems returns whichever alias the client populated, items first.
func (s Submission) lineItems() []ItemInput {
	if len(s.Items) > 0 {
		return s.Items
	}
	return s.Cart
}

// promo resolves the promo flag across both aliases, defaulting to false.
func (s Submission) promo() bool {
	if s.PromoApplied != nil {
		return *s.PromoApplied
	}
	if s.AppliedPromo != nil {
		return *s.AppliedPromo
	}
	return false
}

// packaging resolves the packaging alias pair, empty meaning unset.
func (s Submission) packaging() string {
	if s.PackagingTier != "" {
		return s.PackagingTier
	}
	return s.SelectedPackaging
}

// shipping resolves the shipping alias pair, empty meaning unset.
func (s Submission) shipping() string {
	if s.ShippingMethod != "" {
		return s.ShippingMethod
	}
	return s.SelectedShipping
}
