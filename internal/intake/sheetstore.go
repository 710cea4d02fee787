package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
)

type sheetAppender interface {
	AppendRow(ctx context.Context, row []any) error
}

// SheetStore appends orders as rows on a spreadsheet worksheet. This is the
// default backend: the shop operators work the order queue straight off the
// sheet.
type SheetStore struct {
	sheet sheetAppender
}

func NewSheetStore(sheet sheetAppender) (*SheetStore, error) {
	if sheet == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "sheet client required")
	}
	return &SheetStore{sheet: sheet}, nil
}

func (s *SheetStore) Append(ctx context.Context, priced pricing.PricedOrder) error {
	if err := s.sheet.AppendRow(ctx, sheetRow(priced)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append sheet row")
	}
	return nil
}

// sheetRow fixes the column order. Operators filter on these columns, so the
// layout must not change without migrating the worksheet header.
func sheetRow(priced pricing.PricedOrder) []any {
	order := priced.Order

	address := ""
	if order.Address != nil {
		address = order.Address.OneLine()
	}

	return []any{
		order.CreatedAt.Format(time.RFC3339),
		order.ID,
		order.Customer.Name,
		order.Customer.Email,
		order.Customer.Phone,
		address,
		itemsSummary(order.Items),
		order.PackagingTier.String(),
		order.ShippingMethod.String(),
		order.PaymentMethod.String(),
		order.PromoApplied,
		order.Notes,
		priced.Subtotal.String(),
		priced.Discount.String(),
		priced.PackagingSurcharge.String(),
		priced.ShippingSurcharge.String(),
		priced.Total.String(),
	}
}

func itemsSummary(items []orders.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		part := fmt.Sprintf("%d x %s (%s)", item.Quantity, item.Name, item.LineTotal.String())
		if item.Customization != "" {
			part += " [" + item.Customization + "]"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "; ")
}
