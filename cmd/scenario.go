package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/TRABAJOSUNI2025/logistica-sim/sim"
)

// Scenario represents the full scenario file structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Simulation sim.Config       `yaml:"simulation"`
	Catalog    *CatalogSettings `yaml:"catalog"`
}

// CatalogSettings replaces parts of the reference catalog. Each non-empty
// section replaces the matching default section wholesale.
type CatalogSettings struct {
	SKUs      []sim.SKU           `yaml:"skus"`
	Customers []CustomerSetting   `yaml:"customers"`
	Tiers     map[string][]string `yaml:"tiers"` // group name → customer ids
	Vehicles  []VehicleSetting    `yaml:"vehicles"`
	Distances map[string]int      `yaml:"distances"` // customer name → km
}

type CustomerSetting struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type VehicleSetting struct {
	ID        string  `yaml:"id"`
	Capacity  int     `yaml:"capacity"`
	CostPerKm float64 `yaml:"cost_per_km"`
	Type      string  `yaml:"type"`
}

// loadScenario parses a scenario file on top of the reference configuration
// and catalog. Keys missing from the file keep their defaults; unknown keys
// are errors.
func loadScenario(path string) (sim.Config, sim.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sim.Config{}, sim.Catalog{}, fmt.Errorf("reading scenario: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (sim.Config, sim.Catalog, error) {
	sc := Scenario{Simulation: sim.DefaultConfig()}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return sim.Config{}, sim.Catalog{}, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	cat := sim.DefaultCatalog()
	if sc.Catalog != nil {
		var err error
		if cat, err = sc.Catalog.apply(cat); err != nil {
			return sim.Config{}, sim.Catalog{}, err
		}
	}
	return sc.Simulation, cat, nil
}

func (s *CatalogSettings) apply(base sim.Catalog) (sim.Catalog, error) {
	skus, customers, vehicles := base.SKUs, base.Customers, base.Vehicles
	distances, tiers := base.Distances, base.Tiers

	if len(s.SKUs) > 0 {
		skus = s.SKUs
	}
	if len(s.Customers) > 0 {
		customers = make([]sim.Customer, len(s.Customers))
		for i, c := range s.Customers {
			customers[i] = sim.Customer{ID: c.ID, Name: c.Name}
		}
	}
	if len(s.Vehicles) > 0 {
		vehicles = make([]sim.Vehicle, len(s.Vehicles))
		for i, v := range s.Vehicles {
			vehicles[i] = sim.Vehicle{
				ID:              v.ID,
				Capacity:        v.Capacity,
				CostPerDistance: decimal.NewFromFloat(v.CostPerKm),
				Type:            v.Type,
			}
		}
	}
	if len(s.Distances) > 0 {
		distances = s.Distances
	}
	if len(s.Tiers) > 0 {
		groups := make(map[sim.Tier][]string)
		for name, ids := range s.Tiers {
			tier, err := sim.ParseTier(name)
			if err != nil {
				return sim.Catalog{}, fmt.Errorf("scenario catalog: %w", err)
			}
			groups[tier] = append(groups[tier], ids...)
		}
		tiers = sim.NewTierTable(groups)
	}
	return sim.NewCatalog(skus, customers, vehicles, distances, tiers), nil
}
