package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

type seedFile struct {
	Products []Product `yaml:"products"`
}

// DefaultProducts returns the built-in starter catalog.
func DefaultProducts() []Product {
	products, err := parseSeed(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default catalog: %v", err))
	}
	return products
}

// LoadSeed reads a catalog YAML file. An empty path yields the built-in catalog.
func LoadSeed(path string) ([]Product, error) {
	if path == "" {
		return DefaultProducts(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	products, err := parseSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return products, nil
}

func parseSeed(raw []byte) ([]Product, error) {
	var file seedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	seen := make(map[int64]struct{}, len(file.Products))
	for i, p := range file.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %d: id must be positive", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("product %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
		in := p.Input()
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", p.ID, err)
		}
		file.Products[i] = in.toProduct(p.ID)
	}
	return file.Products, nil
}
