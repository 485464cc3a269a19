package service

import (
	"context"
	"sort"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

// StockRequest сколько единиц товара нужно списать
type StockRequest struct {
	ProductID int64
	Quantity  int
}

// StockLedger единственное место, где меняется остаток товара
type StockLedger struct {
	products repository.ProductRepository
	tx       repository.TxManager
}

func NewStockLedger(products repository.ProductRepository, tx repository.TxManager) *StockLedger {
	return &StockLedger{products: products, tx: tx}
}

// Reserve блокирует строки, проверяет все позиции и только потом списывает.
// Первая непрошедшая позиция в порядке id прерывает списание целиком.
// Возвращает заблокированные товары с уже уменьшенным остатком.
func (l *StockLedger) Reserve(ctx context.Context, reqs []StockRequest) ([]domain.Product, error) {
	wanted := make(map[int64]int, len(reqs))
	for _, r := range reqs {
		if r.ProductID <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if r.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		wanted[r.ProductID] += r.Quantity
	}
	ids := make([]int64, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var reserved []domain.Product
	err := l.tx.WithTransaction(ctx, func(ctx context.Context) error {
		locked, err := l.products.GetForUpdate(ctx, ids)
		if err != nil {
			return translate(err, domain.ErrProductNotFound)
		}
		for _, p := range locked {
			if err := checkAvailable(p, wanted[p.ID]); err != nil {
				return err
			}
		}
		for i := range locked {
			p := &locked[i]
			left := p.StockQuantity - wanted[p.ID]
			if err := l.products.UpdateStock(ctx, p.ID, left, p.Version); err != nil {
				return translate(err, domain.ErrProductNotFound)
			}
			p.StockQuantity = left
			p.Version++
		}
		reserved = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reserved, nil
}

// Release возвращает единицы на склад (пополнение остатка)
func (l *StockLedger) Release(ctx context.Context, productID int64, quantity int) (*domain.Product, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	var updated *domain.Product
	err := l.tx.WithTransaction(ctx, func(ctx context.Context) error {
		locked, err := l.products.GetForUpdate(ctx, []int64{productID})
		if err != nil {
			return translate(err, domain.ErrProductNotFound)
		}
		p := locked[0]
		if quantity > domain.MaxStock-p.StockQuantity {
			return domain.Invalidf("restock of %d would exceed stock limit %d", quantity, domain.MaxStock)
		}
		if err := l.products.UpdateStock(ctx, p.ID, p.StockQuantity+quantity, p.Version); err != nil {
			return translate(err, domain.ErrProductNotFound)
		}
		p.StockQuantity += quantity
		p.Version++
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkAvailable неактивный товар считается отсутствующим на складе
func checkAvailable(p domain.Product, requested int) error {
	available := p.StockQuantity
	if !p.IsActive {
		available = 0
	}
	if requested > available {
		return &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   available,
			Requested:   requested,
		}
	}
	return nil
}
