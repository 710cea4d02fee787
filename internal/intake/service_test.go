package intake

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/martinezcrafts/shopdesk-backend/internal/orders"
	"github.com/martinezcrafts/shopdesk-backend/internal/pricing"
	"github.com/martinezcrafts/shopdesk-backend/internal/receipt"
	"github.com/martinezcrafts/shopdesk-backend/pkg/config"
	pkgerrors "github.com/martinezcrafts/shopdesk-backend/pkg/errors"
	"github.com/martinezcrafts/shopdesk-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	appends []pricing.PricedOrder
	err     error
}

func (s *stubStore) Append(_ context.Context, priced pricing.PricedOrder) error {
	if s.err != nil {
		return s.err
	}
	s.appends = append(s.appends, priced)
	return nil
}

type stubNotifier struct {
	sent []string
	err  error
}

func (n *stubNotifier) Send(_ context.Context, to, _, _, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, to)
	return nil
}

func newTestService(t *testing.T, store Store, notifier Notifier) Service {
	t.Helper()

	rates, err := pricing.NewRates(config.PricingConfig{
		PremiumPackagingFee: "20.00",
		HomeDeliveryFee:     "5.00",
		PromoDiscountRate:   "0.10",
	})
	require.NoError(t, err)

	renderer, err := receipt.NewRenderer(receipt.Config{
		ShopName:    "ShopDesk Crafts",
		VenmoHandle: "@ShopDesk-Crafts",
		RevTrakURL:  "https://shopdesk.revtrak.net/shop",
		ForwardTo:   "orders@shopdeskcrafts.com",
	})
	require.NoError(t, err)

	svc, err := NewService(Params{
		Rates:    rates,
		Renderer: renderer,
		Store:    store,
		Notifier: notifier,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		Now:      func() time.Time { return time.Date(2025, 8, 31, 14, 35, 12, 0, time.UTC) },
	})
	require.NoError(t, err)
	return svc
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func bangleSubmission() orders.Submission {
	return orders.Submission{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Items: []orders.ItemInput{
			{Name: "Bangle Bracelets", Quantity: intPtr(2), TotalPrice: floatPtr(26.00)},
		},
		PaymentMethod: "venmo",
	}
}

func TestSubmitHappyPath(t *testing.T) {
	store := &stubStore{}
	notifier := &stubNotifier{}
	svc := newTestService(t, store, notifier)

	result, err := svc.Submit(context.Background(), bangleSubmission())
	require.NoError(t, err)

	assert.Equal(t, "26.00", result.Total.String())
	assert.NotEmpty(t, result.OrderID)
	assert.Contains(t, result.PaymentInstructions, "@ShopDesk-Crafts")
	assert.Contains(t, result.PaymentInstructions, result.OrderID)
	assert.True(t, result.EmailSent)

	require.Len(t, store.appends, 1)
	assert.Equal(t, result.OrderID, store.appends[0].Order.ID)
	assert.Equal(t, []string{"jane@example.com"}, notifier.sent)
}

func TestSubmitValidationFailureSkipsStore(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, &stubNotifier{})

	sub := bangleSubmission()
	sub.Email = ""

	_, err := svc.Submit(context.Background(), sub)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Empty(t, store.appends)
}

func TestSubmitStoreFailureIsFatal(t *testing.T) {
	store := &stubStore{err: errors.New("quota exceeded")}
	notifier := &stubNotifier{}
	svc := newTestService(t, store, notifier)

	_, err := svc.Submit(context.Background(), bangleSubmission())
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Empty(t, notifier.sent)
}

func TestSubmitNotifierFailureIsSoft(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, &stubNotifier{err: errors.New("smtp refused")})

	result, err := svc.Submit(context.Background(), bangleSubmission())
	require.NoError(t, err)

	assert.False(t, result.EmailSent)
	require.Len(t, store.appends, 1)
}

func TestSubmitWithoutNotifier(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, nil)

	result, err := svc.Submit(context.Background(), bangleSubmission())
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	require.Len(t, store.appends, 1)
}

func TestSubmitPricesWithExtras(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(t, store, nil)

	promo := true
	sub := bangleSubmission()
	sub.PackagingTier = "premium"
	sub.ShippingMethod = "home"
	sub.PromoApplied = &promo

	result, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "48.40", result.Total.String())
}

func TestNewServiceValidatesDeps(t *testing.T) {
	_, err := NewService(Params{})
	assert.Error(t, err)
}
