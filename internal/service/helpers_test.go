package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/events"
	"pcbuilder/internal/observability"
	"pcbuilder/internal/repository"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderCommitted
	err    error
}

func (p *recordingPublisher) PublishOrderCommitted(_ context.Context, e events.OrderCommitted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	store     *repository.MemoryStore
	carts     *CartService
	products  *ProductService
	ledger    *StockLedger
	checkout  *CheckoutService
	builder   *ConfiguratorService
	publisher *recordingPublisher
	metrics   *observability.Metrics
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	cartRepo := repository.NewMemoryCarts(store)
	log := logrus.New()
	log.SetOutput(io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	pub := &recordingPublisher{}

	ledger := NewStockLedger(store, tx)
	products := NewProductService(store, ledger)
	carts := NewCartService(store, cartRepo, tx, metrics)
	return &testEnv{
		store:     store,
		carts:     carts,
		products:  products,
		ledger:    ledger,
		checkout:  NewCheckoutService(cartRepo, repository.NewMemoryOrders(store), tx, ledger, pub, metrics, log),
		builder:   NewConfiguratorService(store, products, carts, repository.NewMemoryBuilds(store), tx),
		publisher: pub,
		metrics:   metrics,
	}
}

func watts(w int) *int { return &w }

// add создаёт активный товар через каталог
func (e *testEnv) add(t *testing.T, name string, category domain.CategorySlug, price string, stock int, mutate ...func(*domain.Product)) *domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Category: category, Price: decimal.RequireFromString(price), StockQuantity: stock}
	for _, m := range mutate {
		m(&p)
	}
	created, err := e.products.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

// setStock меняет остаток в обход сервисов, как это сделал бы другой покупатель
func (e *testEnv) setStock(t *testing.T, id int64, qty int) {
	t.Helper()
	ctx := context.Background()
	p, err := e.store.GetByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, e.store.UpdateStock(ctx, id, qty, p.Version))
}

func (e *testEnv) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := e.store.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (e *testEnv) cartLines(t *testing.T, shopperID int64) map[int64]int {
	t.Helper()
	lines, err := repository.NewMemoryCarts(e.store).List(context.Background(), shopperID)
	require.NoError(t, err)
	out := make(map[int64]int, len(lines))
	for _, l := range lines {
		out[l.ProductID] = l.Quantity
	}
	return out
}

func withSocket(s string) func(*domain.Product) { return func(p *domain.Product) { p.Socket = s } }
func withMemory(m domain.MemoryType) func(*domain.Product) {
	return func(p *domain.Product) { p.MemoryType = m }
}
func withForm(f domain.FormFactor) func(*domain.Product) { return func(p *domain.Product) { p.FormFactor = f } }
func withPower(w int) func(*domain.Product) {
	return func(p *domain.Product) { p.PowerRequirements = watts(w) }
}
