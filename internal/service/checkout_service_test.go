package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/events"
)

var kyiv = CheckoutRequest{ShippingAddress: "Kyiv, Shevchenka 1", PaymentMethod: "cash"}

func TestCheckout_Success(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	_, err := e.carts.Add(ctx, shopper, p.ID, 2)
	require.NoError(t, err)

	res, err := e.checkout.Commit(ctx, shopper, kyiv)
	require.NoError(t, err)
	assert.NotZero(t, res.OrderID)
	assert.True(t, res.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 3, e.stock(t, p.ID))
	assert.Empty(t, e.cartLines(t, shopper))

	o, err := e.checkout.GetOrder(ctx, shopper, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCommitted, o.Status)
	assert.Equal(t, "cash", o.PaymentMethod)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "P", o.Items[0].ProductName)
	assert.True(t, o.TotalAmount.Equal(o.ItemsTotal()))

	require.Len(t, e.publisher.events, 1)
	assert.Equal(t, res.OrderID, e.publisher.events[0].OrderID)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Checkouts.WithLabelValues("ok")))
}

func TestCheckout_InsufficientStockLeavesEverythingUnchanged(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	q := e.add(t, "Q", domain.CategoryStorage, "20", 1)
	_, err := e.carts.Add(ctx, shopper, p.ID, 2)
	require.NoError(t, err)
	_, err = e.carts.Add(ctx, shopper, q.ID, 1)
	require.NoError(t, err)
	e.setStock(t, q.ID, 0)

	_, err = e.checkout.Commit(ctx, shopper, kyiv)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Q", se.ProductName)
	assert.Equal(t, 0, se.Available)

	assert.Equal(t, 5, e.stock(t, p.ID))
	assert.Equal(t, map[int64]int{p.ID: 2, q.ID: 1}, e.cartLines(t, shopper))
	assert.Empty(t, e.publisher.events)

	orders, err := e.checkout.ListOrders(ctx, shopper)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Checkouts.WithLabelValues("insufficient_stock")))
}

func TestCheckout_InactiveProductReportsZeroAvailable(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	_, err := e.carts.Add(ctx, shopper, p.ID, 1)
	require.NoError(t, err)
	require.NoError(t, e.products.Deactivate(ctx, p.ID))

	_, err = e.checkout.Commit(ctx, shopper, kyiv)
	var se *domain.InsufficientStockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.Available)
	assert.Equal(t, 5, e.stock(t, p.ID))
}

func TestCheckout_Validation(t *testing.T) {
	ctx := context.Background()
	e := setup(t)

	_, err := e.checkout.Commit(ctx, shopper, kyiv)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	_, err = e.carts.Add(ctx, shopper, p.ID, 1)
	require.NoError(t, err)

	_, err = e.checkout.Commit(ctx, shopper, CheckoutRequest{ShippingAddress: "   "})
	assert.ErrorIs(t, err, domain.ErrMissingShippingAddress)
	assert.Equal(t, 5, e.stock(t, p.ID))

	_, err = e.checkout.Commit(ctx, 0, kyiv)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	res, err := e.checkout.Commit(ctx, shopper, CheckoutRequest{ShippingAddress: "Lviv"})
	require.NoError(t, err)
	o, err := e.checkout.GetOrder(ctx, shopper, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCash, o.PaymentMethod)
}

func TestCheckout_PriceSnapshotIsImmutable(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	a := e.add(t, "A", domain.CategoryStorage, "19.99", 10)
	b := e.add(t, "B", domain.CategoryStorage, "5.01", 10)
	_, err := e.carts.Add(ctx, shopper, a.ID, 3)
	require.NoError(t, err)
	_, err = e.carts.Add(ctx, shopper, b.ID, 2)
	require.NoError(t, err)

	res, err := e.checkout.Commit(ctx, shopper, kyiv)
	require.NoError(t, err)
	assert.True(t, res.TotalAmount.Equal(decimal.RequireFromString("69.99")), res.TotalAmount.String())

	fresh, err := e.store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	fresh.Price = decimal.NewFromInt(1)
	_, err = e.products.Update(ctx, *fresh)
	require.NoError(t, err)

	o, err := e.checkout.GetOrder(ctx, shopper, res.OrderID)
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("69.99")))
	for _, it := range o.Items {
		if it.ProductID == a.ID {
			assert.True(t, it.PriceAtOrder.Equal(decimal.RequireFromString("19.99")))
		}
	}
	assert.True(t, o.TotalAmount.Equal(o.ItemsTotal()))
}

func TestCheckout_OrdersAreScopedToShopper(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	_, err := e.carts.Add(ctx, shopper, p.ID, 1)
	require.NoError(t, err)
	res, err := e.checkout.Commit(ctx, shopper, kyiv)
	require.NoError(t, err)

	_, err = e.checkout.GetOrder(ctx, shopper+1, res.OrderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = e.checkout.GetOrder(ctx, shopper, 999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	_, err = e.carts.Add(ctx, shopper, p.ID, 1)
	require.NoError(t, err)
	second, err := e.checkout.Commit(ctx, shopper, kyiv)
	require.NoError(t, err)

	list, err := e.checkout.ListOrders(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.OrderID, list[0].ID)
}

func TestCheckout_PublishFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	e.publisher.err = errors.New("broker down")
	p := e.add(t, "P", domain.CategoryStorage, "50", 5)
	_, err := e.carts.Add(ctx, shopper, p.ID, 1)
	require.NoError(t, err)

	_, err = e.checkout.Commit(ctx, shopper, kyiv)
	require.NoError(t, err)
	assert.Equal(t, 4, e.stock(t, p.ID))
}

func TestCheckout_ConcurrentCommitsNeverOversell(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	p := e.add(t, "Hot GPU", domain.CategoryGraphicsCards, "500", 5)

	const shoppers = 12
	for s := int64(1); s <= shoppers; s++ {
		_, err := e.carts.Add(ctx, s, p.ID, 1)
		require.NoError(t, err)
	}

	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	for s := int64(1); s <= shoppers; s++ {
		wg.Add(1)
		go func(s int64) {
			defer wg.Done()
			_, err := e.checkout.Commit(ctx, s, kyiv)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(s)
	}
	wg.Wait()

	assert.Equal(t, int32(5), ok.Load())
	assert.Equal(t, int32(shoppers-5), conflicts.Load())
	assert.Equal(t, 0, e.stock(t, p.ID))
}

func TestStockLedger_ReserveIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	a := e.add(t, "A", domain.CategoryStorage, "1", 3)
	b := e.add(t, "B", domain.CategoryStorage, "1", 1)

	_, err := e.ledger.Reserve(ctx, []StockRequest{{ProductID: a.ID, Quantity: 2}, {ProductID: b.ID, Quantity: 2}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, e.stock(t, a.ID))
	assert.Equal(t, 1, e.stock(t, b.ID))

	_, err = e.ledger.Reserve(ctx, []StockRequest{{ProductID: 404, Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	reserved, err := e.ledger.Reserve(ctx, []StockRequest{{ProductID: b.ID, Quantity: 1}, {ProductID: a.ID, Quantity: 3}})
	require.NoError(t, err)
	require.Len(t, reserved, 2)
	assert.Equal(t, a.ID, reserved[0].ID, "rows are locked in id order")
	assert.Equal(t, 0, e.stock(t, a.ID))
	assert.Equal(t, 0, e.stock(t, b.ID))
}

var _ events.Publisher = (*recordingPublisher)(nil)
