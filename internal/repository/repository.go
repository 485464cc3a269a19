package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"pcbuilder/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrVersionConflict условное обновление не нашло ожидаемую версию строки
var ErrVersionConflict = errors.New("version conflict")

// ProductFilter параметры фильтрации списка товаров
type ProductFilter struct {
	NameSubstring string
	Category      domain.CategorySlug
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	ActiveOnly    bool
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// GetForUpdate блокирует строки до конца транзакции. Порядок результата - по id.
	GetForUpdate(ctx context.Context, ids []int64) ([]domain.Product, error)
	// Update меняет атрибуты каталога, остаток не трогает
	Update(ctx context.Context, p *domain.Product) error
	// UpdateStock записывает остаток, если версия строки равна expectedVersion
	UpdateStock(ctx context.Context, id int64, quantity int, expectedVersion int64) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
}

// CartRepository интерфейс репозитория корзин
type CartRepository interface {
	Get(ctx context.Context, shopperID, productID int64) (*domain.CartItem, error)
	Upsert(ctx context.Context, item *domain.CartItem) error
	// Update возвращает ErrNotFound, если строки нет
	Update(ctx context.Context, item *domain.CartItem) error
	Delete(ctx context.Context, shopperID, productID int64) error
	Clear(ctx context.Context, shopperID int64) error
	// List строки корзины, новые первыми
	List(ctx context.Context, shopperID int64) ([]domain.CartItem, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByShopper(ctx context.Context, shopperID int64) ([]domain.Order, error)
}

// BuildRepository интерфейс репозитория сохранённых сборок
type BuildRepository interface {
	Create(ctx context.Context, b *domain.SavedBuild) error
	ListByShopper(ctx context.Context, shopperID int64, limit int) ([]domain.SavedBuild, error)
}

// TxManager абстракция транзакции. Вложенный вызов присоединяется к внешней транзакции.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f ProductFilter) match(p domain.Product) bool {
	if f.ActiveOnly && !p.IsActive {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if !containsIgnoreCase(p.Name, f.NameSubstring) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}
