package models

import (
	"time"

	"github.com/martinezcrafts/shopdesk-backend/pkg/enums"
)

// OrderRow is the append-only record of one accepted order. Rows are only
// ever created; there is no update or delete path.
type OrderRow struct {
	ID             string               `gorm:"column:id;primaryKey"`
	CreatedAt      time.Time            `gorm:"column:created_at;not null"`
	CustomerName   string               `gorm:"column:customer_name"`
	CustomerEmail  string               `gorm:"column:customer_email;not null"`
	CustomerPhone  *string              `gorm:"column:customer_phone"`
	Address        *string              `gorm:"column:address"`
	Items          OrderRowItems        `gorm:"column:items;serializer:json"`
	PackagingTier  enums.PackagingTier  `gorm:"column:packaging_tier;type:text;not null"`
	ShippingMethod enums.ShippingMethod `gorm:"column:shipping_method;type:text;not null"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null"`
	PromoApplied   bool                 `gorm:"column:promo_applied;not null"`
	Notes          *string              `gorm:"column:notes"`

	// Currency columns hold 2-decimal strings produced by pkg/money.
	Subtotal           string `gorm:"column:subtotal;not null"`
	Discount           string `gorm:"column:discount;not null"`
	PackagingSurcharge string `gorm:"column:packaging_surcharge;not null"`
	ShippingSurcharge  string `gorm:"column:shipping_surcharge;not null"`
	Total              string `gorm:"column:total;not null"`
}

// OrderRowItem is one cart line as persisted on the row.
type OrderRowItem struct {
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	Customization string `json:"customization,omitempty"`
	LineTotal     string `json:"line_total"`
}

type OrderRowItems []OrderRowItem

func (OrderRow) TableName() string {
	return "order_rows"
}
