// Package configurator подбирает совместимые комплектующие для сборки ПК.
// Все функции пакета чистые: состояние хранится только в переданной сборке и каталоге.
package configurator

import (
	"context"
	"sort"

	"pcbuilder/internal/domain"
)

// Catalog источник активных товаров категории
type Catalog interface {
	ListActive(ctx context.Context, category domain.CategorySlug) ([]domain.Product, error)
}

// Filters ограничения на кандидатов слота
type Filters struct {
	Socket     string            `json:"socket,omitempty"`
	MemoryType domain.MemoryType `json:"memory_type,omitempty"`
	FormFactor domain.FormFactor `json:"form_factor,omitempty"`
	MinPower   int               `json:"min_power,omitempty"`
}

func (f Filters) IsZero() bool { return f == Filters{} }

// Override непустые поля o заменяют соответствующие поля f
func (f Filters) Override(o Filters) Filters {
	if o.Socket != "" {
		f.Socket = o.Socket
	}
	if o.MemoryType != "" {
		f.MemoryType = o.MemoryType
	}
	if o.FormFactor != "" {
		f.FormFactor = o.FormFactor
	}
	if o.MinPower > 0 {
		f.MinPower = o.MinPower
	}
	return f
}

// Match подходит ли товар под фильтры. Корпуса сравниваются по таблице размеров.
func (f Filters) Match(category domain.CategorySlug, p domain.Product) bool {
	if f.Socket != "" && p.Socket != f.Socket {
		return false
	}
	if f.MemoryType != "" && p.MemoryType != f.MemoryType {
		return false
	}
	if f.FormFactor != "" {
		if category == domain.CategoryCases {
			if !CaseCandidate(f.FormFactor, p.FormFactor) {
				return false
			}
		} else if p.FormFactor != f.FormFactor {
			return false
		}
	}
	if f.MinPower > 0 && p.Power() < f.MinPower {
		return false
	}
	return true
}

// dependency зависимость слота от уже выбранных
type dependency struct {
	dependsOn []domain.Slot
	derive    func(b domain.Build) Filters
}

// dependencies статический граф зависимостей слотов. cpu, gpu и storage ни от чего не зависят.
var dependencies = map[domain.Slot]dependency{
	domain.SlotMotherboard: {
		dependsOn: []domain.Slot{domain.SlotCPU},
		derive:    func(b domain.Build) Filters { return Filters{Socket: b[domain.SlotCPU].Socket} },
	},
	domain.SlotRAM: {
		dependsOn: []domain.Slot{domain.SlotMotherboard},
		derive:    func(b domain.Build) Filters { return Filters{MemoryType: b[domain.SlotMotherboard].MemoryType} },
	},
	domain.SlotCase: {
		dependsOn: []domain.Slot{domain.SlotMotherboard},
		derive:    func(b domain.Build) Filters { return Filters{FormFactor: b[domain.SlotMotherboard].FormFactor} },
	},
	domain.SlotCooling: {
		dependsOn: []domain.Slot{domain.SlotCPU},
		derive:    func(b domain.Build) Filters { return Filters{Socket: b[domain.SlotCPU].Socket} },
	},
	domain.SlotPSU: {
		dependsOn: []domain.Slot{domain.SlotCPU, domain.SlotGPU},
		derive:    func(b domain.Build) Filters { return Filters{MinPower: RequiredWatts(b)} },
	},
}

// DependsOn слоты, от которых зависит фильтрация данного
func DependsOn(slot domain.Slot) []domain.Slot {
	return dependencies[slot].dependsOn
}

// DeriveFilters фильтры для слота из уже выбранных компонентов.
// Пока ни один из upstream-слотов не выбран, фильтров нет.
func DeriveFilters(b domain.Build, slot domain.Slot) Filters {
	dep, ok := dependencies[slot]
	if !ok {
		return Filters{}
	}
	for _, up := range dep.dependsOn {
		if b.Has(up) {
			return dep.derive(b)
		}
	}
	return Filters{}
}

// CandidateSet результат подбора кандидатов
type CandidateSet struct {
	Slot        domain.Slot      `json:"slot"`
	Items       []domain.Product `json:"items"`
	Applied     Filters          `json:"applied_filters"`
	WasFallback bool             `json:"was_fallback"`
}

// Candidates кандидаты для слота с учётом выбранных компонентов.
// Если фильтры отсекли всё, возвращается вся категория с флагом WasFallback:
// расширяются сразу все фильтры, а не только тот, что дал пустой результат.
func Candidates(ctx context.Context, catalog Catalog, b domain.Build, slot domain.Slot, overrides Filters) (*CandidateSet, error) {
	if !slot.Valid() {
		return nil, domain.ErrUnknownSlot
	}
	all, err := catalog.ListActive(ctx, slot.Category())
	if err != nil {
		return nil, err
	}
	sortByPrice(all)

	filters := DeriveFilters(b, slot).Override(overrides)
	set := &CandidateSet{Slot: slot, Items: all, Applied: filters}
	if filters.IsZero() {
		return set, nil
	}

	filtered := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if filters.Match(slot.Category(), p) {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) == 0 {
		set.WasFallback = true
		return set, nil
	}
	set.Items = filtered
	return set, nil
}

func sortByPrice(ps []domain.Product) {
	sort.SliceStable(ps, func(i, j int) bool {
		if c := ps[i].Price.Cmp(ps[j].Price); c != 0 {
			return c < 0
		}
		return ps[i].ID < ps[j].ID
	})
}
