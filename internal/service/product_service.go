package service

import (
	"context"
	"strings"

	"pcbuilder/internal/configurator"
	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo   repository.ProductRepository
	ledger *StockLedger
}

func NewProductService(repo repository.ProductRepository, ledger *StockLedger) *ProductService {
	return &ProductService{repo: repo, ledger: ledger}
}

var _ configurator.Catalog = (*ProductService)(nil)

// validate проверяет товар против таблицы категорий
func validate(p domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Invalidf("name is required")
	}
	if p.Price.IsNegative() {
		return domain.Invalidf("price must not be negative")
	}
	if p.StockQuantity < 0 {
		return domain.Invalidf("stock_quantity must not be negative")
	}
	if p.StockQuantity > domain.MaxStock {
		return domain.Invalidf("stock_quantity must not exceed %d", domain.MaxStock)
	}
	cat, ok := domain.LookupCategory(p.Category)
	if !ok {
		return domain.Invalidf("unknown category %q", p.Category)
	}
	if err := cat.CheckAttributes(p); err != nil {
		return err
	}
	return p.Specs.CheckFor(p.Category)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	cp := p
	cp.ID = 0
	cp.IsActive = true
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// GetByID витрина видит только активные товары
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrProductNotFound)
	}
	if !p.IsActive {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// Update меняет атрибуты каталога. Остаток меняется только через Restock и оформление заказа,
// активность - только через Deactivate.
func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	cur, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, translate(err, domain.ErrProductNotFound)
	}
	cp := p
	cp.StockQuantity = cur.StockQuantity
	cp.IsActive = cur.IsActive
	if cp.Version == 0 {
		cp.Version = cur.Version
	}
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, translate(err, domain.ErrProductNotFound)
	}
	return &cp, nil
}

// Deactivate мягкое удаление: товар пропадает с витрины, строки заказов остаются
func (s *ProductService) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return translate(err, domain.ErrProductNotFound)
	}
	if !p.IsActive {
		return nil
	}
	p.IsActive = false
	return translate(s.repo.Update(ctx, p), domain.ErrProductNotFound)
}

func (s *ProductService) Restock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	return s.ledger.Release(ctx, id, quantity)
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return nil, domain.Invalidf("min_price must not exceed max_price")
	}
	return s.repo.List(ctx, f)
}

// ListActive источник кандидатов для конфигуратора
func (s *ProductService) ListActive(ctx context.Context, category domain.CategorySlug) ([]domain.Product, error) {
	return s.repo.List(ctx, repository.ProductFilter{Category: category, ActiveOnly: true})
}
