package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slot позиция в сборке
type Slot string

const (
	SlotCPU         Slot = "cpu"
	SlotMotherboard Slot = "motherboard"
	SlotRAM         Slot = "ram"
	SlotGPU         Slot = "gpu"
	SlotStorage     Slot = "storage"
	SlotPSU         Slot = "psu"
	SlotCase        Slot = "case"
	SlotCooling     Slot = "cooling"
)

// Slots порядок шагов конфигуратора
var Slots = []Slot{SlotCPU, SlotMotherboard, SlotRAM, SlotGPU, SlotStorage, SlotPSU, SlotCase, SlotCooling}

var slotCategories = map[Slot]CategorySlug{
	SlotCPU:         CategoryProcessors,
	SlotMotherboard: CategoryMotherboards,
	SlotRAM:         CategoryMemory,
	SlotGPU:         CategoryGraphicsCards,
	SlotStorage:     CategoryStorage,
	SlotPSU:         CategoryPowerSupplies,
	SlotCase:        CategoryCases,
	SlotCooling:     CategoryCooling,
}

func (s Slot) Valid() bool {
	_, ok := slotCategories[s]
	return ok
}

// Category категория каталога, из которой выбирается слот
func (s Slot) Category() CategorySlug { return slotCategories[s] }

func ParseSlot(v string) (Slot, error) {
	s := Slot(v)
	if !s.Valid() {
		return "", ErrUnknownSlot
	}
	return s, nil
}

// Build текущая сборка. Хранит копии товаров: атрибуты фиксируются в момент выбора.
type Build map[Slot]Product

func (b Build) Get(s Slot) (Product, bool) {
	p, ok := b[s]
	return p, ok
}

func (b Build) Has(s Slot) bool {
	_, ok := b[s]
	return ok
}

func (b Build) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b {
		total = total.Add(p.Price)
	}
	return total
}

// Components id выбранных товаров по слотам
func (b Build) Components() map[Slot]int64 {
	out := make(map[Slot]int64, len(b))
	for s, p := range b {
		out[s] = p.ID
	}
	return out
}

// SavedBuild неизменяемый снимок сохранённой сборки
type SavedBuild struct {
	ID         int64           `json:"id"`
	ShopperID  int64           `json:"shopper_id"`
	Name       string          `json:"name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Components map[Slot]int64  `json:"components"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IssueLevel уровень проблемы совместимости
type IssueLevel string

const (
	IssueError   IssueLevel = "error"
	IssueWarning IssueLevel = "warning"
)

// Issue проблема совместимости сборки
type Issue struct {
	Level   IssueLevel `json:"level"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
}
