package domain

// CategorySlug идентификатор категории каталога
type CategorySlug string

const (
	CategoryProcessors    CategorySlug = "processors"
	CategoryMotherboards  CategorySlug = "motherboards"
	CategoryMemory        CategorySlug = "memory"
	CategoryGraphicsCards CategorySlug = "graphics-cards"
	CategoryStorage       CategorySlug = "storage"
	CategoryPowerSupplies CategorySlug = "power-supplies"
	CategoryCases         CategorySlug = "cases"
	CategoryCooling       CategorySlug = "cooling"
)

// Capability набор атрибутов совместимости, которые имеют смысл для категории
type Capability uint8

const (
	SupportsSocket Capability = 1 << iota
	SupportsMemoryType
	SupportsFormFactor
	SupportsPowerRating
)

func (c Capability) Has(flag Capability) bool { return c&flag != 0 }

// Category категория с дескриптором возможностей
type Category struct {
	Slug         CategorySlug `json:"slug"`
	Name         string       `json:"name"`
	Capabilities Capability   `json:"-"`
}

// CategoryCapabilities JSON-представление дескриптора
type CategoryCapabilities struct {
	SupportsSocket      bool `json:"supports_socket"`
	SupportsMemoryType  bool `json:"supports_memory_type"`
	SupportsFormFactor  bool `json:"supports_form_factor"`
	SupportsPowerRating bool `json:"supports_power_rating"`
}

func (c Category) Describe() CategoryCapabilities {
	return CategoryCapabilities{
		SupportsSocket:      c.Capabilities.Has(SupportsSocket),
		SupportsMemoryType:  c.Capabilities.Has(SupportsMemoryType),
		SupportsFormFactor:  c.Capabilities.Has(SupportsFormFactor),
		SupportsPowerRating: c.Capabilities.Has(SupportsPowerRating),
	}
}

// Categories фиксированная таблица категорий. Новая категория добавляется здесь.
var Categories = []Category{
	{Slug: CategoryProcessors, Name: "Processors", Capabilities: SupportsSocket | SupportsPowerRating},
	{Slug: CategoryMotherboards, Name: "Motherboards", Capabilities: SupportsSocket | SupportsMemoryType | SupportsFormFactor},
	{Slug: CategoryMemory, Name: "Memory", Capabilities: SupportsMemoryType},
	{Slug: CategoryGraphicsCards, Name: "Graphics cards", Capabilities: SupportsPowerRating},
	{Slug: CategoryStorage, Name: "Storage", Capabilities: 0},
	{Slug: CategoryPowerSupplies, Name: "Power supplies", Capabilities: SupportsPowerRating | SupportsFormFactor},
	{Slug: CategoryCases, Name: "Cases", Capabilities: SupportsFormFactor},
	{Slug: CategoryCooling, Name: "Cooling", Capabilities: SupportsSocket | SupportsPowerRating},
}

// LookupCategory ищет категорию по slug
func LookupCategory(slug CategorySlug) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}

// CheckAttributes проверяет, что у товара заполнены только поддерживаемые категорией атрибуты
func (c Category) CheckAttributes(p Product) error {
	if p.Socket != "" && !c.Capabilities.Has(SupportsSocket) {
		return Invalidf("category %s does not support socket", c.Slug)
	}
	if p.MemoryType != "" {
		if !c.Capabilities.Has(SupportsMemoryType) {
			return Invalidf("category %s does not support memory_type", c.Slug)
		}
		if !p.MemoryType.Valid() {
			return Invalidf("unknown memory_type %q", p.MemoryType)
		}
	}
	if p.FormFactor != "" {
		if !c.Capabilities.Has(SupportsFormFactor) {
			return Invalidf("category %s does not support form_factor", c.Slug)
		}
		if !p.FormFactor.Valid() {
			return Invalidf("unknown form_factor %q", p.FormFactor)
		}
	}
	if p.PowerRequirements != nil {
		if !c.Capabilities.Has(SupportsPowerRating) {
			return Invalidf("category %s does not support power_requirements", c.Slug)
		}
		if *p.PowerRequirements < 0 {
			return Invalidf("power_requirements must not be negative")
		}
	}
	return nil
}
