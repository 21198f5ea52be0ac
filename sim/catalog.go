package sim

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnknownName is the display fallback for ids missing from the catalog.
const UnknownName = "Unknown"

// SKU is a stocked spare part.
type SKU struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

// Customer is an account that places orders.
type Customer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
}

// Vehicle is a fleet category. Each category can serve any number of routes
// within a day.
type Vehicle struct {
	ID              string          `json:"id"`
	Capacity        int             `json:"capacity"`          // units per trip
	CostPerDistance decimal.Decimal `json:"cost_per_distance"` // currency per km
	Type            string          `json:"type"`
}

// Catalog is the static data consumed by the pipeline. Build one with
// DefaultCatalog or NewCatalog and treat it as read-only afterwards.
type Catalog struct {
	SKUs      []SKU          `json:"skus"`
	Customers []Customer     `json:"customers"`
	Vehicles  []Vehicle      `json:"vehicles"`
	Distances map[string]int `json:"distances"` // customer display name → km
	Tiers     TierTable      `json:"tiers"`
}

// NewCatalog assembles a catalog, stamping each customer with its tier.
func NewCatalog(skus []SKU, customers []Customer, vehicles []Vehicle, distances map[string]int, tiers TierTable) Catalog {
	stamped := make([]Customer, len(customers))
	for i, c := range customers {
		c.Tier = tiers.TierOf(c.ID)
		stamped[i] = c
	}
	return Catalog{
		SKUs:      append([]SKU(nil), skus...),
		Customers: stamped,
		Vehicles:  append([]Vehicle(nil), vehicles...),
		Distances: distances,
		Tiers:     tiers,
	}
}

// DefaultCatalog returns the reference catalog: eight Caterpillar spare parts,
// ten customers, four vehicle categories and road distances from the Lima
// warehouse. Each call builds a fresh value.
func DefaultCatalog() Catalog {
	skus := []SKU{
		{ID: "CAT140-0101", Description: "Oil filter for C15 engine"},
		{ID: "CAT140-0235", Description: "Hydraulic filter for 966K"},
		{ID: "CAT330-4410", Description: "Hydraulic pump 320D"},
		{ID: "CAT777-8821", Description: "Brake kit for 777F mining truck"},
		{ID: "CAT950-3320", Description: "Hydraulic hose 950M"},
		{ID: "CAT312-7722", Description: "Pressure sensor 312D"},
		{ID: "CAT992-1205", Description: "Turbocharger for 3516 engine"},
		{ID: "CAT601-5520", Description: "Main cylinder seal kit"},
	}
	customers := []Customer{
		{ID: "CL01", Name: "Minera Antamina"},
		{ID: "CL02", Name: "Minera Toquepala"},
		{ID: "CL03", Name: "Minera Yanacocha"},
		{ID: "CL04", Name: "Minera Las Bambas"},
		{ID: "CL05", Name: "Minera Antapaccay"},
		{ID: "CL06", Name: "Distribuidor Piura"},
		{ID: "CL07", Name: "Distribuidor Arequipa"},
		{ID: "CL08", Name: "Distribuidor Trujillo"},
		{ID: "CL09", Name: "Centro de Mantenimiento Lima"},
		{ID: "CL10", Name: "Centro de Mantenimiento Arequipa"},
	}
	vehicles := []Vehicle{
		{ID: "VH01", Capacity: 180, CostPerDistance: decimal.RequireFromString("6.5"), Type: "Rigid truck 10T"},
		{ID: "VH02", Capacity: 220, CostPerDistance: decimal.RequireFromString("7.2"), Type: "Truck 12T"},
		{ID: "VH03", Capacity: 140, CostPerDistance: decimal.RequireFromString("5.8"), Type: "Mining 4x4 pickup"},
		{ID: "VH04", Capacity: 260, CostPerDistance: decimal.RequireFromString("8.1"), Type: "Light trailer"},
	}
	distances := map[string]int{
		"Minera Antamina":                  450,
		"Minera Toquepala":                 980,
		"Minera Yanacocha":                 620,
		"Minera Las Bambas":                780,
		"Minera Antapaccay":                890,
		"Distribuidor Piura":               940,
		"Distribuidor Arequipa":            1010,
		"Distribuidor Trujillo":            560,
		"Centro de Mantenimiento Lima":     15,
		"Centro de Mantenimiento Arequipa": 1010,
	}
	return NewCatalog(skus, customers, vehicles, distances, DefaultTierTable())
}

// CustomerIndex returns customers keyed by id.
func (c Catalog) CustomerIndex() map[string]Customer {
	index := make(map[string]Customer, len(c.Customers))
	for _, cust := range c.Customers {
		index[cust.ID] = cust
	}
	return index
}

// CustomerName returns the display name for id, or UnknownName.
func (c Catalog) CustomerName(id string) string {
	for _, cust := range c.Customers {
		if cust.ID == id {
			return cust.Name
		}
	}
	return UnknownName
}

// SKUDescription returns the description for id, or UnknownName.
func (c Catalog) SKUDescription(id string) string {
	for _, s := range c.SKUs {
		if s.ID == id {
			return s.Description
		}
	}
	return UnknownName
}

// Vehicle looks up a vehicle category by id.
func (c Catalog) Vehicle(id string) (Vehicle, bool) {
	for _, v := range c.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Validate reports structural catalog problems: empty sections, duplicate ids,
// non-positive vehicle capacities, negative costs or distances.
func (c Catalog) Validate() error {
	if len(c.SKUs) == 0 {
		return fmt.Errorf("catalog has no SKUs")
	}
	if len(c.Customers) == 0 {
		return fmt.Errorf("catalog has no customers")
	}
	if len(c.Vehicles) == 0 {
		return fmt.Errorf("catalog has no vehicles")
	}
	seen := make(map[string]bool)
	for i, s := range c.SKUs {
		if s.ID == "" {
			return fmt.Errorf("skus[%d]: empty id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("skus[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	seen = make(map[string]bool)
	for i, cust := range c.Customers {
		if cust.ID == "" {
			return fmt.Errorf("customers[%d]: empty id", i)
		}
		if seen[cust.ID] {
			return fmt.Errorf("customers[%d]: duplicate id %q", i, cust.ID)
		}
		seen[cust.ID] = true
	}
	seen = make(map[string]bool)
	for i, v := range c.Vehicles {
		if seen[v.ID] {
			return fmt.Errorf("vehicles[%d]: duplicate id %q", i, v.ID)
		}
		seen[v.ID] = true
		if v.Capacity <= 0 {
			return fmt.Errorf("vehicles[%d] %s: capacity must be positive, got %d", i, v.ID, v.Capacity)
		}
		if v.CostPerDistance.IsNegative() {
			return fmt.Errorf("vehicles[%d] %s: cost per distance must be non-negative, got %s", i, v.ID, v.CostPerDistance)
		}
	}
	for name, km := range c.Distances {
		if km < 0 {
			return fmt.Errorf("distance to %q must be non-negative, got %d", name, km)
		}
	}
	return nil
}
