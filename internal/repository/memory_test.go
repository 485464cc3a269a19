package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbuilder/internal/domain"
)

func newProduct(name string, category domain.CategorySlug, price int64, stock int) domain.Product {
	return domain.Product{Name: name, Category: category, Price: decimal.NewFromInt(price), StockQuantity: stock, IsActive: true}
}

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := newProduct("Ryzen 5 7600", domain.CategoryProcessors, 220, 5)
	require.NoError(t, store.Create(ctx, &p))
	require.NotZero(t, p.ID)
	assert.Equal(t, int64(1), p.Version)

	got, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got.Price = decimal.NewFromInt(210)
	got.StockQuantity = 100
	require.NoError(t, store.Update(ctx, got))
	assert.Equal(t, int64(2), got.Version)
	assert.Equal(t, 5, got.StockQuantity, "update does not touch stock")

	// устаревшая версия
	p.Name = "stale"
	assert.ErrorIs(t, store.Update(ctx, &p), ErrVersionConflict)

	_, err = store.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateStockChecksVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := newProduct("A", domain.CategoryStorage, 10, 5)
	require.NoError(t, store.Create(ctx, &p))

	require.NoError(t, store.UpdateStock(ctx, p.ID, 3, p.Version))
	assert.ErrorIs(t, store.UpdateStock(ctx, p.ID, 1, p.Version), ErrVersionConflict)

	got, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)
	assert.Equal(t, p.Version+1, got.Version)
}

func TestMemoryTx_TransactionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)

	// seed product
	p := newProduct("A", domain.CategoryStorage, 10, 5)
	require.NoError(t, store.Create(ctx, &p))

	// emulate atomic create order with stock decrease
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		rows, err := store.GetForUpdate(ctx, []int64{p.ID})
		if err != nil {
			return err
		}
		if err := store.UpdateStock(ctx, p.ID, rows[0].StockQuantity-3, rows[0].Version); err != nil {
			return err
		}
		o := domain.Order{ShopperID: 7, Status: domain.OrderStatusCommitted,
			Items: []domain.OrderItem{{ProductID: p.ID, Quantity: 3, PriceAtOrder: p.Price}}}
		return orders.Create(ctx, &o)
	})
	require.NoError(t, err)

	pp, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pp.StockQuantity)

	list, err := orders.ListByShopper(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, list[0].ID, list[0].Items[0].OrderID)
}

func TestMemoryTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	carts := NewMemoryCarts(store)

	p := newProduct("A", domain.CategoryStorage, 10, 5)
	require.NoError(t, store.Create(ctx, &p))
	require.NoError(t, carts.Upsert(ctx, &domain.CartItem{ShopperID: 1, ProductID: p.ID, Quantity: 2}))

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.UpdateStock(ctx, p.ID, 0, p.Version); err != nil {
			return err
		}
		if err := carts.Clear(ctx, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.StockQuantity)
	assert.Equal(t, p.Version, got.Version)

	lines, err := carts.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMemoryTx_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	carts := NewMemoryCarts(store)

	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		return tx.WithTransaction(ctx, func(ctx context.Context) error {
			return carts.Upsert(ctx, &domain.CartItem{ShopperID: 1, ProductID: 1, Quantity: 1})
		})
	})
	require.NoError(t, err)

	lines, err := carts.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMemoryCarts_NewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	carts := NewMemoryCarts(store)

	for _, id := range []int64{3, 1, 2} {
		require.NoError(t, carts.Upsert(ctx, &domain.CartItem{ShopperID: 1, ProductID: id, Quantity: 1}))
	}
	// повторное добавление не меняет позицию строки
	require.NoError(t, carts.Upsert(ctx, &domain.CartItem{ShopperID: 1, ProductID: 3, Quantity: 4}))

	lines, err := carts.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, []int64{2, 1, 3}, []int64{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})
	assert.Equal(t, 4, lines[2].Quantity)

	assert.ErrorIs(t, carts.Update(ctx, &domain.CartItem{ShopperID: 1, ProductID: 9, Quantity: 1}), ErrNotFound)
	assert.ErrorIs(t, carts.Delete(ctx, 2, 1), ErrNotFound)
	require.NoError(t, carts.Clear(ctx, 1))
	require.NoError(t, carts.Clear(ctx, 1))
}

func TestMemoryBuilds_LimitAndOrder(t *testing.T) {
	ctx := context.Background()
	builds := NewMemoryBuilds(NewMemoryStore())
	for i := 0; i < 12; i++ {
		b := domain.SavedBuild{ShopperID: 1, Name: "b", Components: map[domain.Slot]int64{domain.SlotCPU: int64(i)}}
		require.NoError(t, builds.Create(ctx, &b))
	}
	other := domain.SavedBuild{ShopperID: 2, Name: "x"}
	require.NoError(t, builds.Create(ctx, &other))

	list, err := builds.ListByShopper(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, int64(12), list[0].ID)
	assert.Equal(t, int64(11), list[0].Components[domain.SlotCPU])
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(n string, category domain.CategorySlug, price int64, active bool) {
		p := newProduct(n, category, price, 1)
		p.IsActive = active
		require.NoError(t, store.Create(ctx, &p))
	}
	add("Ryzen 7 7700X", domain.CategoryProcessors, 300, true)
	add("Core i5-13400F", domain.CategoryProcessors, 200, true)
	add("Ryzen 5 5600", domain.CategoryProcessors, 120, false)
	add("B650 Tomahawk", domain.CategoryMotherboards, 210, true)

	list, err := store.List(ctx, ProductFilter{NameSubstring: "ryzen"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, _ = store.List(ctx, ProductFilter{NameSubstring: "ryzen", ActiveOnly: true})
	assert.Len(t, list, 1)

	min := decimal.NewFromInt(200)
	list, _ = store.List(ctx, ProductFilter{MinPrice: &min})
	for _, p := range list {
		assert.False(t, p.Price.LessThan(min))
	}
	assert.Len(t, list, 3)

	max := decimal.NewFromInt(200)
	list, _ = store.List(ctx, ProductFilter{MaxPrice: &max, Category: domain.CategoryProcessors})
	assert.Len(t, list, 2)
}
