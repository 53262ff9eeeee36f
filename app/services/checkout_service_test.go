package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() models.OrderCustomer {
	return models.OrderCustomer{
		FirstName: "Asha",
		Email:     "asha@example.com",
		Phone:     "9876543210",
		Address1:  "12 MG Road",
		City:      "Pune",
		PostCode:  "411001",
	}
}

func newTestCheckout(t *testing.T, submitter OrderSubmitter) (*CheckoutService, *CartSessions, *repositories.MemoryCartSnapshotRepository) {
	t.Helper()
	store := repositories.NewMemoryCartSnapshotRepository()
	sessions := NewCartSessions(store, time.Hour, nil, nil)
	calc, err := NewCheckoutCalculator(models.TaxModelGST)
	require.NoError(t, err)
	return NewCheckoutService(sessions, calc, submitter, nil, nil), sessions, store
}

func TestPlaceOrderClearsCartOnSuccess(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{}
	svc, sessions, store := newTestCheckout(t, submitter)

	session := sessions.Get(ctx, "c1")
	_, _ = session.Cart.Add(testLine("a", "20", 2))
	_, _ = session.Promotion.Apply("SAVE10")

	receipt, err := svc.PlaceOrder(ctx, "c1", validCustomer())
	require.NoError(t, err)
	assert.Equal(t, "INV-TEST", receipt.OrderCode)

	require.Len(t, submitter.requests, 1)
	req := submitter.requests[0]
	assert.Len(t, req.Lines, 1)
	assert.Equal(t, "SAVE10", req.Totals.PromoCode)
	// 40 + 7.20 GST - 4 + 10
	assert.Equal(t, "53.20", req.Totals.GrandTotal.StringFixed(2))

	assert.True(t, session.Cart.IsEmpty())
	_, active := session.Promotion.Active()
	assert.False(t, active)

	payload, err := store.ReadSnapshot(ctx, "c1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(payload))
}

func TestPlaceOrderKeepsCartOnFailure(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{err: errors.New("payment gateway down")}
	svc, sessions, _ := newTestCheckout(t, submitter)

	session := sessions.Get(ctx, "c1")
	_, _ = session.Cart.Add(testLine("a", "20", 2))

	_, err := svc.PlaceOrder(ctx, "c1", validCustomer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment gateway down")
	assert.Equal(t, 1, session.Cart.Len())
}

func TestPlaceOrderRejectsEmptyCartAndBadCustomer(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{}
	svc, sessions, _ := newTestCheckout(t, submitter)

	_, err := svc.PlaceOrder(ctx, "c1", validCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _ = sessions.Get(ctx, "c1").Cart.Add(testLine("a", "1", 1))
	customer := validCustomer()
	customer.Email = "not-an-email"
	_, err = svc.PlaceOrder(ctx, "c1", customer)
	assert.ErrorIs(t, err, ErrInvalidCustomer)

	assert.Empty(t, submitter.requests)
}

func TestCheckoutSummary(t *testing.T) {
	ctx := context.Background()
	svc, sessions, _ := newTestCheckout(t, &fakeSubmitter{})

	_, err := svc.Summary(ctx, "c1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, _ = sessions.Get(ctx, "c1").Cart.Add(testLine("a", "60", 1))
	totals, err := svc.Summary(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, totals.ShippingCost.IsZero())
	assert.Equal(t, "70.80", totals.GrandTotal.StringFixed(2))
}

func TestPlaceOrderKeepsLinesAddedDuringSubmission(t *testing.T) {
	ctx := context.Background()
	submitter := &fakeSubmitter{}
	svc, sessions, _ := newTestCheckout(t, submitter)

	session := sessions.Get(ctx, "c1")
	_, _ = session.Cart.Add(testLine("a", "20", 2))
	_, _ = session.Cart.Add(testLine("b", "5", 1))
	submitter.onSubmit = func(OrderRequest) {
		_, _ = session.Cart.Add(testLine("late", "3", 1))
		_, _ = session.Cart.Add(testLine("a", "20", 1))
	}

	_, err := svc.PlaceOrder(ctx, "c1", validCustomer())
	require.NoError(t, err)

	lines := session.Cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "late", lines[1].ID)
}

func TestPlaceOrderSubmitsOncePerCart(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	submitter := &fakeSubmitter{onSubmit: func(OrderRequest) {
		entered <- struct{}{}
		<-release
	}}
	svc, sessions, _ := newTestCheckout(t, submitter)
	_, _ = sessions.Get(ctx, "c1").Cart.Add(testLine("a", "20", 2))

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.PlaceOrder(ctx, "c1", validCustomer())
			errs <- err
		}()
	}

	<-entered
	select {
	case <-entered:
		t.Fatal("second checkout reached the submitter while the first was in flight")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	results := []error{<-errs, <-errs}
	assert.Len(t, submitter.requests, 1)
	assert.ElementsMatch(t, []bool{true, false}, []bool{results[0] == nil, results[1] == nil})
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, ErrEmptyCart)
		}
	}
}
