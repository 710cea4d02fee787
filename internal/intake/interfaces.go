package intake

import (
	"context"

	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
)

// Store appends one priced order to the durable row store.
type Store interface {
	Append(ctx context.Context, priced pricing.PricedOrder) error
}

// Notifier delivers the receipt email. Delivery is best effort; the intake
// flow never fails because a Notifier did.
type Notifier interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
