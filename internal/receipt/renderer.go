// Package receipt renders priced orders into plain-text and HTML receipts.
// Both renderings are pure functions of the priced order: the same input
// always produces byte-identical output.
package receipt

import (
	"fmt"
	"html"
	"strings"

	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
)

// Config carries the shop identity and the fixed payment-method metadata
// rendered into instruction blocks.
type Config struct {
	ShopName    string
	VenmoHandle string
	RevTrakURL  string
	ForwardTo   string
}

// Renderer builds receipts. Payment instructions are selected from a closed
// strategy set keyed by the payment method enum; adding a method means adding
// a strategy, not another conditional.
type Renderer struct {
	cfg          Config
	instructions map[enums.PaymentMethod]instructionSet
}

type instructionSet interface {
	Text(p pricing.PricedOrder) string
	HTML(p pricing.PricedOrder) string
}

func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.ShopName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "receipt shop name required")
	}
	if cfg.VenmoHandle == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "venmo handle required")
	}
	if cfg.RevTrakURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "revtrak url required")
	}
	if cfg.ForwardTo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "forwarding address required")
	}
	return &Renderer{
		cfg: cfg,
		instructions: map[enums.PaymentMethod]instructionSet{
			enums.PaymentMethodCash:    cashInstructions{},
			enums.PaymentMethodVenmo:   venmoInstructions{handle: cfg.VenmoHandle},
			enums.PaymentMethodRevTrak: revtrakInstructions{url: cfg.RevTrakURL, forwardTo: cfg.ForwardTo},
		},
	}, nil
}

// Subject builds the receipt email subject line.
func (r *Renderer) Subject(p pricing.PricedOrder) string {
	return fmt.Sprintf("Your %s order %s", r.cfg.ShopName, p.Order.ID)
}

// InstructionsText returns only the payment instruction block, for callers
// that surface instructions outside the full receipt.
func (r *Renderer) InstructionsText(p pricing.PricedOrder) string {
	if set, ok := r.instructions[p.Order.PaymentMethod]; ok {
		return set.Text(p)
	}
	return ""
}

// Text renders the plain-text receipt. No escaping is applied.
func (r *Renderer) Text(p pricing.PricedOrder) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s receipt\n", r.cfg.ShopName)
	fmt.Fprintf(&b, "Order: %s\n", p.Order.ID)
	fmt.Fprintf(&b, "Placed: %s\n\n", p.Order.CreatedAt.Format("2006-01-02 15:04 MST"))

	if p.Order.Customer.Name != "" {
		fmt.Fprintf(&b, "Customer: %s\n", p.Order.Customer.Name)
	}
	if p.Order.Address != nil {
		fmt.Fprintf(&b, "Deliver to: %s\n", p.Order.Address.OneLine())
	}

	b.WriteString("Items:\n")
	for _, item := range p.Order.Items {
		fmt.Fprintf(&b, "  %d x %s  %s\n", item.Quantity, item.Name, item.LineTotal.String())
		if item.Customization != "" {
			fmt.Fprintf(&b, "      (%s)\n", item.Customization)
		}
	}

	fmt.Fprintf(&b, "Subtotal: %s\n", p.Subtotal.String())
	if !p.PackagingSurcharge.IsZero() {
		fmt.Fprintf(&b, "Premium packaging: %s\n", p.PackagingSurcharge.String())
	}
	if !p.ShippingSurcharge.IsZero() {
		fmt.Fprintf(&b, "Home delivery: %s\n", p.ShippingSurcharge.String())
	}
	if !p.Discount.IsZero() {
		fmt.Fprintf(&b, "Promo discount: -%s\n", p.Discount.String())
	}
	fmt.Fprintf(&b, "Total: %s\n", p.Total.String())

	if p.Order.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", p.Order.Notes)
	}

	b.WriteString("\n")
	b.WriteString(r.InstructionsText(p))
	b.WriteString("\n")

	return b.String()
}

// HTML renders the markup receipt. Every customer-controlled value passes
// through esc before interpolation.
func (r *Renderer) HTML(p pricing.PricedOrder) string {
	var b strings.Builder

	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<h2>%s receipt</h2>\n", esc(r.cfg.ShopName))
	fmt.Fprintf(&b, "<p>Order <strong>%s</strong><br>Placed %s</p>\n",
		esc(p.Order.ID), p.Order.CreatedAt.Format("2006-01-02 15:04 MST"))

	if p.Order.Customer.Name != "" {
		fmt.Fprintf(&b, "<p>Customer: %s</p>\n", esc(p.Order.Customer.Name))
	}
	if p.Order.Address != nil {
		fmt.Fprintf(&b, "<p>Deliver to: %s</p>\n", esc(p.Order.Address.OneLine()))
	}

	b.WriteString("<table cellpadding=\"4\">\n")
	for _, item := range p.Order.Items {
		fmt.Fprintf(&b, "<tr><td>%d x %s</td><td align=\"right\">%s</td></tr>\n",
			item.Quantity, esc(item.Name), item.LineTotal.String())
		if item.Customization != "" {
			fmt.Fprintf(&b, "<tr><td colspan=\"2\"><em>%s</em></td></tr>\n", esc(item.Customization))
		}
	}
	fmt.Fprintf(&b, "<tr><td>Subtotal</td><td align=\"right\">%s</td></tr>\n", p.Subtotal.String())
	if !p.PackagingSurcharge.IsZero() {
		fmt.Fprintf(&b, "<tr><td>Premium packaging</td><td align=\"right\">%s</td></tr>\n", p.PackagingSurcharge.String())
	}
	if !p.ShippingSurcharge.IsZero() {
		fmt.Fprintf(&b, "<tr><td>Home delivery</td><td align=\"right\">%s</td></tr>\n", p.ShippingSurcharge.String())
	}
	if !p.Discount.IsZero() {
		fmt.Fprintf(&b, "<tr><td>Promo discount</td><td align=\"right\">-%s</td></tr>\n", p.Discount.String())
	}
	fmt.Fprintf(&b, "<tr><td><strong>Total</strong></td><td align=\"right\"><strong>%s</strong></td></tr>\n", p.Total.String())
	b.WriteString("</table>\n")

	if p.Order.Notes != "" {
		fmt.Fprintf(&b, "<p>Notes: %s</p>\n", esc(p.Order.Notes))
	}

	if set, ok := r.instructions[p.Order.PaymentMethod]; ok {
		b.WriteString(set.HTML(p))
		b.WriteString("\n")
	}

	b.WriteString("</body></html>\n")
	return b.String()
}

// esc escapes the five HTML-significant characters.
func esc(s string) string {
	return html.EscapeString(s)
}

type cashInstructions struct{}

func (cashInstructions) Text(p pricing.PricedOrder) string {
	return "Payment is collected in person at pickup or delivery."
}

func (cashInstructions) HTML(p pricing.PricedOrder) string {
	return "<p>Payment is collected in person at pickup or delivery.</p>"
}

type venmoInstructions struct {
	handle string
}

func (v venmoInstructions) Text(p pricing.PricedOrder) string {
	return fmt.Sprintf("Send %s to %s on Venmo.\nReference order %s in the payment note.",
		p.Total.String(), v.handle, p.Order.ID)
}

func (v venmoInstructions) HTML(p pricing.PricedOrder) string {
	return fmt.Sprintf("<p>Send <strong>%s</strong> to <strong>%s</strong> on Venmo.<br>Reference order %s in the payment note.</p>",
		p.Total.String(), esc(v.handle), esc(p.Order.ID))
}

type revtrakInstructions struct {
	url       string
	forwardTo string
}

func (r revtrakInstructions) Text(p pricing.PricedOrder) string {
	return fmt.Sprintf("Pay online at %s.\nEnter the exact total %s at checkout.\nThen forward this receipt to %s with order %s included.",
		r.url, p.Total.String(), r.forwardTo, p.Order.ID)
}

func (r revtrakInstructions) HTML(p pricing.PricedOrder) string {
	return fmt.Sprintf("<p>Pay online at <a href=\"%s\">%s</a>.<br>Enter the exact total <strong>%s</strong> at checkout.<br>Then forward this receipt to %s with order %s included.</p>",
		esc(r.url), esc(r.url), p.Total.String(), esc(r.forwardTo), esc(p.Order.ID))
}
