package sim

import (
	"fmt"
	"sort"
	"time"
)

// OrderLine is one SKU and quantity within an order.
type OrderLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Order is a customer order placed on a simulated day. Orders are never
// mutated once generated.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderID formats the id of the seq-th order of a day, e.g. PED01-007.
// Zero padding keeps lexical order equal to (day, seq) order.
func OrderID(day, seq int) string {
	return fmt.Sprintf("PED%02d-%03d", day, seq)
}

// Units returns the sum of line quantities.
func (o Order) Units() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

// DayMap maps day number (1-based) to that day's orders in generation order.
// The slice order is the iteration order every stage uses.
type DayMap map[int][]Order

// Days returns the day numbers in ascending order.
func (d DayMap) Days() []int {
	days := make([]int, 0, len(d))
	for day := range d {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// TotalUnits sums the units of all orders.
func TotalUnits(orders []Order) int {
	total := 0
	for _, o := range orders {
		total += o.Units()
	}
	return total
}

// MostRequestedSKU returns the SKU with the most requested units and that
// count. Ties go to the SKU that appeared first. Returns ("", 0) for no lines.
func MostRequestedSKU(orders []Order) (string, int) {
	counts := make(map[string]int)
	var firstSeen []string
	for _, o := range orders {
		for _, l := range o.Lines {
			if _, ok := counts[l.SKU]; !ok {
				firstSeen = append(firstSeen, l.SKU)
			}
			counts[l.SKU] += l.Quantity
		}
	}
	best, bestUnits := "", 0
	for _, sku := range firstSeen {
		if best == "" || counts[sku] > bestUnits {
			best, bestUnits = sku, counts[sku]
		}
	}
	return best, bestUnits
}
