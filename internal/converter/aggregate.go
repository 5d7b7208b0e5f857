// =============================================================================
// Spectrum Parts List - Aggregation
// =============================================================================
//
// The reports are produced by a fixed chain of reductions:
//
//   loaded lines
//     -> Deduplicate        (drop exact repeats, first one wins)
//     -> SortByItemCode     (ordinal, ascending)
//     -> ByItemCostCodeDescription   (pass 1: group + sum)
//     -> ByItemCode                  (pass 2: re-group pass 1 output + sum)
//
// Pass 2 consumes the pass 1 summaries, not the lines.
//
// Groups are emitted in order of first occurrence, so sorted input produces
// sorted summaries.
//
// =============================================================================

package converter

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

// Deduplicate returns the lines with exact repeats removed. Two lines are
// repeats when types.PurchaseLine.Equal holds. The first occurrence is kept
// and the input order is otherwise preserved.
func Deduplicate(lines []types.PurchaseLine) []types.PurchaseLine {
	seen := make(map[string]struct{}, len(lines))
	unique := make([]types.PurchaseLine, 0, len(lines))

	for _, line := range lines {
		key := line.Key()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, line)
	}

	return unique
}

// SortByItemCode sorts lines in place by item code using byte-wise string
// comparison. The sort is stable so repeated runs produce identical reports.
func SortByItemCode(lines []types.PurchaseLine) {
	slices.SortStableFunc(lines, func(a, b types.PurchaseLine) int {
		return strings.Compare(a.ItemCode, b.ItemCode)
	})
}

// DistinctSorted is Deduplicate followed by SortByItemCode.
func DistinctSorted(lines []types.PurchaseLine) []types.PurchaseLine {
	unique := Deduplicate(lines)
	SortByItemCode(unique)
	return unique
}

// costCodeKey is the pass 1 grouping key.
type costCodeKey struct {
	itemCode    string
	costCode    string
	description string
}

// ByItemCostCodeDescription groups lines by item code, cost code and
// description, summing QuantityList1 and ItemPrice within each group.
func ByItemCostCodeDescription(lines []types.PurchaseLine) []types.AggregatedPart {
	groups := make(map[costCodeKey]int)
	parts := []types.AggregatedPart{}

	for _, line := range lines {
		key := costCodeKey{line.ItemCode, line.CostCode, line.Description}

		idx, exists := groups[key]
		if !exists {
			idx = len(parts)
			groups[key] = idx
			parts = append(parts, types.AggregatedPart{
				ItemCode:    line.ItemCode,
				CostCode:    line.CostCode,
				Description: line.Description,
				Quantity:    decimal.Zero,
				Price:       decimal.Zero,
			})
		}

		parts[idx].Quantity = parts[idx].Quantity.Add(line.QuantityList1)
		parts[idx].Price = parts[idx].Price.Add(line.ItemPrice)
	}

	return parts
}

// ByItemCode re-groups pass 1 summaries by item code alone, summing the
// already summed quantity and price.
func ByItemCode(parts []types.AggregatedPart) []types.AggregatedPart {
	groups := make(map[string]int)
	items := []types.AggregatedPart{}

	for _, part := range parts {
		idx, exists := groups[part.ItemCode]
		if !exists {
			idx = len(items)
			groups[part.ItemCode] = idx
			items = append(items, types.AggregatedPart{
				ItemCode: part.ItemCode,
				Quantity: decimal.Zero,
				Price:    decimal.Zero,
			})
		}

		items[idx].Quantity = items[idx].Quantity.Add(part.Quantity)
		items[idx].Price = items[idx].Price.Add(part.Price)
	}

	return items
}
