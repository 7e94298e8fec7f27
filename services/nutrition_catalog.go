package services

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hyuyu1012/chaeum/models"
)

//go:embed data/nutrition.json
var catalogData []byte

// NutritionCatalog is the static food-composition table. Lookup is a
// case-sensitive substring match over the canonical food names, first
// record in table order winning — deterministic, but deliberately not a
// best-match ranking (a known precision limitation of the source data's
// naming convention).
type NutritionCatalog struct {
	records []models.NutritionFacts
}

// NewNutritionCatalog loads the table embedded in the binary.
func NewNutritionCatalog() (*NutritionCatalog, error) {
	return parseCatalog(catalogData)
}

// LoadNutritionCatalog loads the table from an external JSON file, for
// deployments that carry a fuller dataset than the embedded one.
func LoadNutritionCatalog(path string) (*NutritionCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parseCatalog(b)
}

// NewNutritionCatalogFrom builds a catalog from in-memory records.
func NewNutritionCatalogFrom(records []models.NutritionFacts) *NutritionCatalog {
	return &NutritionCatalog{records: records}
}

func parseCatalog(b []byte) (*NutritionCatalog, error) {
	var records []models.NutritionFacts
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return &NutritionCatalog{records: records}, nil
}

// Len reports the number of catalog records.
func (c *NutritionCatalog) Len() int {
	return len(c.records)
}

// Lookup returns the first record whose name contains name as a substring,
// or nil when there is no match. The returned record is a copy; stored
// snapshots never alias catalog state.
func (c *NutritionCatalog) Lookup(name string) *models.NutritionFacts {
	if name == "" {
		return nil
	}
	for _, r := range c.records {
		if strings.Contains(r.Name, name) {
			rec := r
			return &rec
		}
	}
	return nil
}

// Search returns every matching record in table order, for the manual
// label-entry search box.
func (c *NutritionCatalog) Search(name string) []models.NutritionFacts {
	if name == "" {
		return nil
	}
	var out []models.NutritionFacts
	for _, r := range c.records {
		if strings.Contains(r.Name, name) {
			out = append(out, r)
		}
	}
	return out
}
