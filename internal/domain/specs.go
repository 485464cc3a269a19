package domain

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

type ProcessorSpec struct {
	Cores         int     `json:"cores" yaml:"cores"`
	Threads       int     `json:"threads" yaml:"threads"`
	BaseClockGHz  float64 `json:"base_clock_ghz" yaml:"base_clock_ghz"`
	BoostClockGHz float64 `json:"boost_clock_ghz,omitempty" yaml:"boost_clock_ghz"`
	IntegratedGPU bool    `json:"integrated_gpu,omitempty" yaml:"integrated_gpu"`
}

type MotherboardSpec struct {
	Chipset     string `json:"chipset" yaml:"chipset"`
	MemorySlots int    `json:"memory_slots" yaml:"memory_slots"`
	MaxMemoryGB int    `json:"max_memory_gb,omitempty" yaml:"max_memory_gb"`
}

type MemorySpec struct {
	CapacityGB int `json:"capacity_gb" yaml:"capacity_gb"`
	SpeedMHz   int `json:"speed_mhz" yaml:"speed_mhz"`
	Modules    int `json:"modules,omitempty" yaml:"modules"`
}

type GraphicsSpec struct {
	Chipset string `json:"chipset" yaml:"chipset"`
	VRAMGB  int    `json:"vram_gb" yaml:"vram_gb"`
}

type StorageSpec struct {
	CapacityGB int    `json:"capacity_gb" yaml:"capacity_gb"`
	Interface  string `json:"interface" yaml:"interface"`
}

type PowerSupplySpec struct {
	Efficiency string `json:"efficiency,omitempty" yaml:"efficiency"`
	Modular    bool   `json:"modular,omitempty" yaml:"modular"`
}

type CaseSpec struct {
	MaxGPULengthMM int `json:"max_gpu_length_mm,omitempty" yaml:"max_gpu_length_mm"`
}

type CoolingSpec struct {
	Type string `json:"type" yaml:"type"`
	TDPW int    `json:"tdp_w,omitempty" yaml:"tdp_w"`
}

// Specs характеристики товара: заполняется ровно одно поле, соответствующее категории
type Specs struct {
	Processor   *ProcessorSpec   `json:"processor,omitempty" yaml:"processor,omitempty"`
	Motherboard *MotherboardSpec `json:"motherboard,omitempty" yaml:"motherboard,omitempty"`
	Memory      *MemorySpec      `json:"memory,omitempty" yaml:"memory,omitempty"`
	Graphics    *GraphicsSpec    `json:"graphics,omitempty" yaml:"graphics,omitempty"`
	Storage     *StorageSpec     `json:"storage,omitempty" yaml:"storage,omitempty"`
	PowerSupply *PowerSupplySpec `json:"power_supply,omitempty" yaml:"power_supply,omitempty"`
	Case        *CaseSpec        `json:"case,omitempty" yaml:"case,omitempty"`
	Cooling     *CoolingSpec     `json:"cooling,omitempty" yaml:"cooling,omitempty"`
}

// Kind возвращает категорию заполненного варианта; false если вариантов нет или больше одного
func (s Specs) Kind() (CategorySlug, bool) {
	var kinds []CategorySlug
	if s.Processor != nil {
		kinds = append(kinds, CategoryProcessors)
	}
	if s.Motherboard != nil {
		kinds = append(kinds, CategoryMotherboards)
	}
	if s.Memory != nil {
		kinds = append(kinds, CategoryMemory)
	}
	if s.Graphics != nil {
		kinds = append(kinds, CategoryGraphicsCards)
	}
	if s.Storage != nil {
		kinds = append(kinds, CategoryStorage)
	}
	if s.PowerSupply != nil {
		kinds = append(kinds, CategoryPowerSupplies)
	}
	if s.Case != nil {
		kinds = append(kinds, CategoryCases)
	}
	if s.Cooling != nil {
		kinds = append(kinds, CategoryCooling)
	}
	if len(kinds) != 1 {
		return "", false
	}
	return kinds[0], true
}

func (s Specs) IsZero() bool {
	return s == Specs{}
}

// CheckFor пустые характеристики допустимы, иначе вариант должен совпадать с категорией
func (s Specs) CheckFor(category CategorySlug) error {
	if s.IsZero() {
		return nil
	}
	kind, ok := s.Kind()
	if !ok {
		return Invalidf("specs must describe exactly one component kind")
	}
	if kind != category {
		return Invalidf("specs for %s do not match category %s", kind, category)
	}
	return nil
}

func (s Specs) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "marshal specs")
	}
	return string(data), nil
}

func (s *Specs) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*s = Specs{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("unsupported specs column type %T", src)
	}
	if len(data) == 0 {
		*s = Specs{}
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, s), "unmarshal specs")
}
