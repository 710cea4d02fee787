// Package intake orchestrates one order submission end to end: normalize,
// price, persist, render, notify.
package intake

import (
	"context"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/internal/receipt"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
	"github.com/martinezcrafts/shopdesk-backend/pkg/metrics"
	"github.com/martinezcrafts/shopdesk-backend/pkg/money"
)

// Result is the success payload returned to the storefront.
type Result struct {
	OrderID             string       `json:"orderId"`
	Total               money.Amount `json:"total"`
	PaymentInstructions string       `json:"paymentInstructions,omitempty"`
	EmailSent           bool         `json:"emailSent"`
}

type Service interface {
	Submit(ctx context.Context, sub orders.Submission) (*Result, error)
}

// Params bundles the service dependencies. Notifier and Metrics are
// optional; everything else is required.
type Params struct {
	Rates    pricing.Rates
	Renderer *receipt.Renderer
	Store    Store
	Notifier Notifier
	Logger   *logger.Logger
	Metrics  *metrics.IntakeMetrics
	Now      func() time.Time
}

type service struct {
	rates    pricing.Rates
	renderer *receipt.Renderer
	store    Store
	notifier Notifier
	logg     *logger.Logger
	metrics  *metrics.IntakeMetrics
	now      func() time.Time
}

func NewService(p Params) (Service, error) {
	if p.Renderer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "receipt renderer required")
	}
	if p.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order store required")
	}
	if p.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		rates:    p.Rates,
		renderer: p.Renderer,
		store:    p.Store,
		notifier: p.Notifier,
		logg:     p.Logger,
		metrics:  p.Metrics,
		now:      now,
	}, nil
}

// Submit runs the intake pipeline. The store append is the commit point:
// anything before it failing means nothing was persisted, and anything after
// it failing is reported as a soft failure on an otherwise successful order.
func (s *service) Submit(ctx context.Context, sub orders.Submission) (*Result, error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration(time.Since(started))
	}()

	order, err := orders.Normalize(sub, s.now())
	if err != nil {
		s.metrics.IncReceived(metrics.OutcomeRejected)
		s.logg.Warn(ctx, "order submission rejected")
		return nil, err
	}

	ctx = s.logg.WithOrderID(ctx, order.ID)
	ctx = s.logg.WithPaymentMethod(ctx, order.PaymentMethod.String())

	priced := pricing.Price(order, s.rates)

	if err := s.store.Append(ctx, priced); err != nil {
		s.metrics.IncReceived(metrics.OutcomeStoreFailed)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append order to store")
	}

	emailSent := s.deliverReceipt(ctx, priced)

	s.metrics.IncReceived(metrics.OutcomeAccepted)
	s.logg.Info(ctx, "order accepted")

	return &Result{
		OrderID:             order.ID,
		Total:               priced.Total,
		PaymentInstructions: s.renderer.InstructionsText(priced),
		EmailSent:           emailSent,
	}, nil
}

func (s *service) deliverReceipt(ctx context.Context, priced pricing.PricedOrder) bool {
	if s.notifier == nil {
		return false
	}

	textBody := s.renderer.Text(priced)
	htmlBody := s.renderer.HTML(priced)
	subject := s.renderer.Subject(priced)

	if err := s.notifier.Send(ctx, priced.Order.Customer.Email, subject, textBody, htmlBody); err != nil {
		s.metrics.IncEmailFailure()
		s.logg.Error(ctx, "receipt email delivery failed", err)
		return false
	}
	return true
}
