// Package seed загружает стартовый каталог из YAML.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type item struct {
	Name       string       `yaml:"name"`
	Brand      string       `yaml:"brand"`
	Category   string       `yaml:"category"`
	Price      string       `yaml:"price"`
	Stock      int          `yaml:"stock"`
	Socket     string       `yaml:"socket"`
	MemoryType string       `yaml:"memory_type"`
	FormFactor string       `yaml:"form_factor"`
	Power      *int         `yaml:"power"`
	Specs      domain.Specs `yaml:"specs"`
}

type file struct {
	Products []item `yaml:"products"`
}

// Catalog интерфейс каталога, в который пишется сид
type Catalog interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	List(ctx context.Context, f repository.ProductFilter) ([]domain.Product, error)
}

// Parse читает товары из YAML
func Parse(r io.Reader) ([]domain.Product, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	out := make([]domain.Product, 0, len(f.Products))
	for i, it := range f.Products {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "product #%d %q: price", i+1, it.Name)
		}
		out = append(out, domain.Product{
			Name:              it.Name,
			Brand:             it.Brand,
			Category:          domain.CategorySlug(it.Category),
			Price:             price,
			StockQuantity:     it.Stock,
			Socket:            it.Socket,
			MemoryType:        domain.MemoryType(it.MemoryType),
			FormFactor:        domain.FormFactor(it.FormFactor),
			PowerRequirements: it.Power,
			Specs:             it.Specs,
		})
	}
	return out, nil
}

// Open файл каталога или встроенный каталог при пустом пути
func Open(path string) ([]domain.Product, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultCatalog))
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer fh.Close()
	return Parse(fh)
}

// Apply создаёт отсутствующие товары; совпадение определяется по имени. Возвращает число созданных.
func Apply(ctx context.Context, catalog Catalog, products []domain.Product) (int, error) {
	existing, err := catalog.List(ctx, repository.ProductFilter{})
	if err != nil {
		return 0, err
	}
	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		names[strings.ToLower(p.Name)] = struct{}{}
	}
	created := 0
	for _, p := range products {
		key := strings.ToLower(p.Name)
		if _, ok := names[key]; ok {
			continue
		}
		if _, err := catalog.Create(ctx, p); err != nil {
			return created, errors.Wrapf(err, "create %q", p.Name)
		}
		names[key] = struct{}{}
		created++
	}
	return created, nil
}
