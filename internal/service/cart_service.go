package service

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/observability"
	"pcbuilder/internal/repository"
)

// CartService корзина покупателя. Каждая мутация - отдельная транзакция.
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	tx       repository.TxManager
	metrics  *observability.Metrics
}

func NewCartService(products repository.ProductRepository, carts repository.CartRepository, tx repository.TxManager, metrics *observability.Metrics) *CartService {
	return &CartService{products: products, carts: carts, tx: tx, metrics: metrics}
}

// activeProduct товар для записи в корзину; неактивный неотличим от отсутствующего
func (s *CartService) activeProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrProductNotFound
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrProductNotFound)
	}
	if !p.IsActive {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Add увеличивает количество строки (или создаёт её) и возвращает итоговое количество
func (s *CartService) Add(ctx context.Context, shopperID, productID int64, quantity int) (qty int, err error) {
	defer func() { s.metrics.ObserveCartMutation("add", err) }()
	if err := requireShopper(shopperID); err != nil {
		return 0, err
	}
	if quantity < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.activeProduct(ctx, productID)
		if err != nil {
			return err
		}
		existing := 0
		line, err := s.carts.Get(ctx, shopperID, productID)
		switch {
		case err == nil:
			existing = line.Quantity
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		// сравнение без сложения: existing+quantity может переполнить int
		if quantity > p.StockQuantity || existing > p.StockQuantity-quantity {
			return &domain.InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: p.StockQuantity, Requested: addCapped(existing, quantity)}
		}
		item := domain.CartItem{ShopperID: shopperID, ProductID: productID, Quantity: existing + quantity}
		if err := s.carts.Upsert(ctx, &item); err != nil {
			return err
		}
		qty = item.Quantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return qty, nil
}

// Update заменяет количество в существующей строке
func (s *CartService) Update(ctx context.Context, shopperID, productID int64, quantity int) (err error) {
	defer func() { s.metrics.ObserveCartMutation("update", err) }()
	if err := requireShopper(shopperID); err != nil {
		return err
	}
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.activeProduct(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > p.StockQuantity {
			return &domain.InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: p.StockQuantity, Requested: quantity}
		}
		item := domain.CartItem{ShopperID: shopperID, ProductID: productID, Quantity: quantity}
		return translate(s.carts.Update(ctx, &item), domain.ErrLineNotFound)
	})
}

func (s *CartService) Remove(ctx context.Context, shopperID, productID int64) (err error) {
	defer func() { s.metrics.ObserveCartMutation("remove", err) }()
	if err := requireShopper(shopperID); err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return translate(s.carts.Delete(ctx, shopperID, productID), domain.ErrLineNotFound)
	})
}

// Clear идемпотентна
func (s *CartService) Clear(ctx context.Context, shopperID int64) (err error) {
	defer func() { s.metrics.ObserveCartMutation("clear", err) }()
	if err := requireShopper(shopperID); err != nil {
		return err
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.carts.Clear(ctx, shopperID)
	})
}

// View корзина с живыми ценами. Строки неактивных товаров скрыты, но не удаляются.
// TotalItems число видимых строк, а не сумма количеств.
func (s *CartService) View(ctx context.Context, shopperID int64) (*domain.CartView, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	lines, err := s.carts.List(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	view := &domain.CartView{Items: make([]domain.CartLine, 0, len(lines)), TotalAmount: decimal.Zero}
	for _, l := range lines {
		p, err := s.products.GetByID(ctx, l.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !p.IsActive {
			continue
		}
		itemTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		view.Items = append(view.Items, domain.CartLine{
			ProductID:     p.ID,
			Name:          p.Name,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			Quantity:      l.Quantity,
			ItemTotal:     itemTotal,
		})
		view.TotalAmount = view.TotalAmount.Add(itemTotal)
	}
	view.TotalItems = len(view.Items)
	return view, nil
}

// addCapped сумма, насыщающаяся на math.MaxInt
func addCapped(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}
