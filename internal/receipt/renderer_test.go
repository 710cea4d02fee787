package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Config{
		ShopName:    "ShopDesk Crafts",
		VenmoHandle: "@ShopDesk-Crafts",
		RevTrakURL:  "https://shopdesk.revtrak.net/shop",
		ForwardTo:   "orders@shopdeskcrafts.com",
	})
	require.NoError(t, err)
	return r
}

func pricedBangleOrder(method enums.PaymentMethod) pricing.PricedOrder {
	order := &orders.Order{
		ID:        "ORD-20250831-143512-AB12CD",
		CreatedAt: time.Date(2025, 8, 31, 14, 35, 12, 0, time.UTC),
		Customer:  orders.Customer{Name: "Jane Doe", Email: "jane@example.com"},
		Items: []orders.CartItem{
			{Name: "Bangle Bracelets", Quantity: 2, LineTotal: money.MustFromString("26.00"), Customization: "engraved initials"},
		},
		PackagingTier:  enums.PackagingTierStandard,
		ShippingMethod: enums.ShippingMethodCentral,
		PaymentMethod:  method,
	}
	return pricing.PricedOrder{
		Order:              order,
		Subtotal:           money.MustFromString("26.00"),
		Discount:           money.Zero(),
		PackagingSurcharge: money.Zero(),
		ShippingSurcharge:  money.Zero(),
		Total:              money.MustFromString("26.00"),
	}
}

func TestNewRendererRequiresAllFields(t *testing.T) {
	_, err := NewRenderer(Config{VenmoHandle: "@x", RevTrakURL: "https://x", ForwardTo: "x@y.com"})
	assert.Error(t, err)

	_, err = NewRenderer(Config{ShopName: "S", RevTrakURL: "https://x", ForwardTo: "x@y.com"})
	assert.Error(t, err)
}

func TestTextReceiptRevTrak(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodRevTrak)

	text := r.Text(p)

	assert.Contains(t, text, "ShopDesk Crafts receipt")
	assert.Contains(t, text, "ORD-20250831-143512-AB12CD")
	assert.Contains(t, text, "2 x Bangle Bracelets  26.00")
	assert.Contains(t, text, "(engraved initials)")
	assert.Contains(t, text, "Subtotal: 26.00")
	assert.Contains(t, text, "Total: 26.00")
	assert.Contains(t, text, "https://shopdesk.revtrak.net/shop")
	assert.Contains(t, text, "exact total 26.00")
	assert.Contains(t, text, "orders@shopdeskcrafts.com")
}

func TestHTMLReceiptRevTrak(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodRevTrak)

	markup := r.HTML(p)

	assert.Contains(t, markup, "ORD-20250831-143512-AB12CD")
	assert.Contains(t, markup, `<a href="https://shopdesk.revtrak.net/shop">`)
	assert.Contains(t, markup, "<strong>26.00</strong>")
	assert.Contains(t, markup, "orders@shopdeskcrafts.com")
}

func TestTextReceiptVenmo(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodVenmo)

	text := r.Text(p)
	assert.Contains(t, text, "@ShopDesk-Crafts")
	assert.Contains(t, text, "Reference order ORD-20250831-143512-AB12CD")
}

func TestTextReceiptCash(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodCash)

	assert.Contains(t, r.Text(p), "collected in person")
	assert.Contains(t, r.HTML(p), "collected in person")
}

func TestReceiptOmitsZeroLines(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodCash)

	text := r.Text(p)
	assert.NotContains(t, text, "Premium packaging")
	assert.NotContains(t, text, "Home delivery")
	assert.NotContains(t, text, "Promo discount")

	markup := r.HTML(p)
	assert.NotContains(t, markup, "Premium packaging")
	assert.NotContains(t, markup, "Promo discount")
}

func TestReceiptShowsSurchargeAndDiscountLines(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodCash)
	p.Order.PackagingTier = enums.PackagingTierPremium
	p.Order.ShippingMethod = enums.ShippingMethodHome
	p.Order.PromoApplied = true
	p.Discount = money.MustFromString("2.60")
	p.PackagingSurcharge = money.MustFromString("20.00")
	p.ShippingSurcharge = money.MustFromString("5.00")
	p.Total = money.MustFromString("48.40")

	text := r.Text(p)
	assert.Contains(t, text, "Premium packaging: 20.00")
	assert.Contains(t, text, "Home delivery: 5.00")
	assert.Contains(t, text, "Promo discount: -2.60")
	assert.Contains(t, text, "Total: 48.40")
}

func TestHTMLEscapesCustomerText(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodCash)
	p.Order.Customer.Name = `<script>alert("x")</script>`
	p.Order.Items[0].Name = "Mug & Coaster <set>"
	p.Order.Notes = "it's a gift"

	markup := r.HTML(p)

	assert.NotContains(t, markup, "<script>")
	assert.Contains(t, markup, "&lt;script&gt;")
	assert.Contains(t, markup, "Mug &amp; Coaster &lt;set&gt;")
	assert.Contains(t, markup, "it&#39;s a gift")
}

func TestTextLeavesCustomerTextUnescaped(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodCash)
	p.Order.Items[0].Name = "Mug & Coaster"

	assert.Contains(t, r.Text(p), "Mug & Coaster")
}

func TestRenderingIsIdempotent(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodRevTrak)

	assert.Equal(t, r.Text(p), r.Text(p))
	assert.Equal(t, r.HTML(p), r.HTML(p))
}

func TestSubjectAndInstructions(t *testing.T) {
	r := testRenderer(t)
	p := pricedBangleOrder(enums.PaymentMethodVenmo)

	assert.Equal(t, "Your ShopDesk Crafts order ORD-20250831-143512-AB12CD", r.Subject(p))

	instructions := r.InstructionsText(p)
	assert.True(t, strings.HasPrefix(instructions, "Send 26.00 to @ShopDesk-Crafts"))
}
