package intake

import (
	"context"

	"gorm.io/gorm"

	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/pkg/db/models"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
)

// Repository appends orders to the relational order_rows table. Alternative
// backend to the spreadsheet for shops that already run a database.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "database handle required")
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Append(ctx context.Context, priced pricing.PricedOrder) error {
	row := newOrderRow(priced)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order row")
	}
	return nil
}

func newOrderRow(priced pricing.PricedOrder) *models.OrderRow {
	order := priced.Order

	items := make(models.OrderRowItems, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, models.OrderRowItem{
			Name:          item.Name,
			Quantity:      item.Quantity,
			Customization: item.Customization,
			LineTotal:     item.LineTotal.String(),
		})
	}

	var address *string
	if order.Address != nil {
		line := order.Address.OneLine()
		address = &line
	}

	return &models.OrderRow{
		ID:                 order.ID,
		CreatedAt:          order.CreatedAt,
		CustomerName:       order.Customer.Name,
		CustomerEmail:      order.Customer.Email,
		CustomerPhone:      optional(order.Customer.Phone),
		Address:            address,
		Items:              items,
		PackagingTier:      order.PackagingTier,
		ShippingMethod:     order.ShippingMethod,
		PaymentMethod:      order.PaymentMethod,
		PromoApplied:       order.PromoApplied,
		Notes:              optional(order.Notes),
		Subtotal:           priced.Subtotal.String(),
		Discount:           priced.Discount.String(),
		PackagingSurcharge: priced.PackagingSurcharge.String(),
		ShippingSurcharge:  priced.ShippingSurcharge.String(),
		Total:              priced.Total.String(),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
