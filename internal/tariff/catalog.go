package tariff

import "github.com/polkiloo/tariffbot/internal/domain/model"

// Catalog is a read-only set of purchasable tariffs.
type Catalog struct {
	codes  []string
	byCode map[string]model.Tariff
}

// NewCatalog builds catalog preserving the given tariff order.
func NewCatalog(tariffs ...model.Tariff) *Catalog {
	c := &Catalog{byCode: make(map[string]model.Tariff, len(tariffs))}
	for _, t := range tariffs {
		if _, exists := c.byCode[t.Code]; exists {
			continue
		}
		c.codes = append(c.codes, t.Code)
		c.byCode[t.Code] = t
	}
	return c
}

// Default returns the current fixed-price catalog.
func Default() *Catalog {
	return NewCatalog(
		model.Tariff{Code: "BASIC", Title: "Тариф Базовый", AmountKopecks: 1000_00},
		model.Tariff{Code: "PRO", Title: "Тариф Про", AmountKopecks: 2500_00},
	)
}

// Get returns tariff by code.
func (c *Catalog) Get(code string) (model.Tariff, bool) {
	t, ok := c.byCode[code]
	return t, ok
}

// All returns tariffs in catalog order.
func (c *Catalog) All() []model.Tariff {
	result := make([]model.Tariff, 0, len(c.codes))
	for _, code := range c.codes {
		result = append(result, c.byCode[code])
	}
	return result
}
