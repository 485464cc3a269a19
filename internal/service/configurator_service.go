package service

import (
	"context"
	"strings"

	"pcbuilder/internal/configurator"
	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

// SavedBuildsLimit сколько последних сборок показывается покупателю
const SavedBuildsLimit = 10

// Selection выбранные товары по слотам; нулевой id означает пустой слот
type Selection map[domain.Slot]int64

// ConfiguratorService связывает чистый конфигуратор с каталогом, корзиной и сохранёнными сборками
type ConfiguratorService struct {
	products repository.ProductRepository
	catalog  configurator.Catalog
	carts    *CartService
	builds   repository.BuildRepository
	tx       repository.TxManager
}

func NewConfiguratorService(
	products repository.ProductRepository,
	catalog configurator.Catalog,
	carts *CartService,
	builds repository.BuildRepository,
	tx repository.TxManager,
) *ConfiguratorService {
	return &ConfiguratorService{products: products, catalog: catalog, carts: carts, builds: builds, tx: tx}
}

// ResolveBuild загружает выбранные товары. Сборка хранит копии, поэтому дальнейшие
// изменения каталога на неё не влияют.
func (s *ConfiguratorService) ResolveBuild(ctx context.Context, sel Selection) (domain.Build, error) {
	b := make(domain.Build, len(sel))
	for slot, id := range sel {
		if !slot.Valid() {
			return nil, domain.ErrUnknownSlot
		}
		if id == 0 {
			continue
		}
		if id < 0 {
			return nil, domain.Invalidf("invalid product id %d for slot %s", id, slot)
		}
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			return nil, translate(err, domain.ErrProductNotFound)
		}
		if !p.IsActive {
			return nil, domain.ErrProductNotFound
		}
		if p.Category != slot.Category() {
			return nil, domain.Invalidf("product %d is %s, slot %s expects %s", id, p.Category, slot, slot.Category())
		}
		b[slot] = *p
	}
	return b, nil
}

func (s *ConfiguratorService) Candidates(ctx context.Context, sel Selection, slot domain.Slot, overrides configurator.Filters) (*configurator.CandidateSet, error) {
	if !slot.Valid() {
		return nil, domain.ErrUnknownSlot
	}
	if overrides.MemoryType != "" && !overrides.MemoryType.Valid() {
		return nil, domain.Invalidf("unknown memory_type %q", overrides.MemoryType)
	}
	if overrides.FormFactor != "" && !overrides.FormFactor.Valid() {
		return nil, domain.Invalidf("unknown form_factor %q", overrides.FormFactor)
	}
	if overrides.MinPower < 0 {
		return nil, domain.Invalidf("min_power must not be negative")
	}
	b, err := s.ResolveBuild(ctx, sel)
	if err != nil {
		return nil, err
	}
	return configurator.Candidates(ctx, s.catalog, b, slot, overrides)
}

func (s *ConfiguratorService) CheckBuild(ctx context.Context, sel Selection) ([]domain.Issue, error) {
	b, err := s.ResolveBuild(ctx, sel)
	if err != nil {
		return nil, err
	}
	return configurator.CheckBuild(b), nil
}

func (s *ConfiguratorService) EstimatePower(ctx context.Context, sel Selection) (int, error) {
	b, err := s.ResolveBuild(ctx, sel)
	if err != nil {
		return 0, err
	}
	return configurator.RequiredWatts(b), nil
}

// AddBuildToCart кладёт по одной единице каждого компонента. Сборка с ошибками
// совместимости или с отсутствующим на складе компонентом не добавляется совсем.
func (s *ConfiguratorService) AddBuildToCart(ctx context.Context, shopperID int64, sel Selection) (int, error) {
	if err := requireShopper(shopperID); err != nil {
		return 0, err
	}
	added := 0
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		b, err := s.ResolveBuild(ctx, sel)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			return domain.Invalidf("build is empty")
		}
		if configurator.HasErrors(configurator.CheckBuild(b)) {
			return domain.ErrIncompatibleBuild
		}
		for _, slot := range domain.Slots {
			p, ok := b.Get(slot)
			if !ok {
				continue
			}
			if p.StockQuantity == 0 {
				return &domain.InsufficientStockError{ProductID: p.ID, ProductName: p.Name, Available: 0, Requested: 1}
			}
		}
		for _, slot := range domain.Slots {
			p, ok := b.Get(slot)
			if !ok {
				continue
			}
			if _, err := s.carts.Add(ctx, shopperID, p.ID, 1); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// SaveBuild сохраняет неизменяемый снимок; цена считается по текущему каталогу
func (s *ConfiguratorService) SaveBuild(ctx context.Context, shopperID int64, name string, sel Selection) (*domain.SavedBuild, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalidf("build name is required")
	}
	b, err := s.ResolveBuild(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, domain.Invalidf("build is empty")
	}
	saved := domain.SavedBuild{
		ShopperID:  shopperID,
		Name:       name,
		TotalPrice: b.TotalPrice(),
		Components: b.Components(),
	}
	if err := s.builds.Create(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *ConfiguratorService) ListSavedBuilds(ctx context.Context, shopperID int64) ([]domain.SavedBuild, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	return s.builds.ListByShopper(ctx, shopperID, SavedBuildsLimit)
}
