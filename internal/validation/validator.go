// =============================================================================
// Spectrum Parts List - Report Reconciliation
// =============================================================================
//
// This module cross-checks the three reports of a run before they are
// reported as done. The summaries are derived from the distinct lines, so
// the following must hold:
//   - Total quantity and total price are the same at every stage
//   - The distinct lines are ordered by item code
//   - Each item code appears once in the item summary
//   - Each (item code, cost code, description) appears once in the cost
//     code summary
//
// ERROR HANDLING:
//   - Problems are collected, not returned as the first error
//   - Every problem is a warning: the reports are still written, and the
//     problem is logged and shown in the run summary
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

// SeverityWarning marks a problem that is reported but does not fail the run.
const SeverityWarning = "warning"

// Rules checked by CheckTotals.
const (
	RuleQuantityConserved = "quantity_conserved"
	RulePriceConserved    = "price_conserved"
	RuleSortedByItem      = "sorted_by_item"
	RuleUniqueGroup       = "unique_group"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single reconciliation problem.
type ValidationError struct {
	// Severity is SeverityWarning.
	Severity string

	// Stage names the report the problem was found in.
	Stage string

	// Rule is the check that failed.
	Rule string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %s",
		strings.ToUpper(e.Severity),
		e.Stage,
		e.Rule,
		e.Message,
	)
}

// Stage names used in ValidationError.Stage.
const (
	StageLines      = "lines"
	StageByCostCode = "by_cost_code"
	StageByItem     = "by_item"
)

// =============================================================================
// RECONCILIATION
// =============================================================================

// CheckTotals reconciles the distinct lines against both summaries and
// returns every problem found. A nil result means the run is consistent.
//
// PARAMETERS:
//   - lines: The distinct, sorted purchase lines.
//   - byCostCode: The pass 1 summaries.
//   - byItem: The pass 2 summaries.
func CheckTotals(lines []types.PurchaseLine, byCostCode, byItem []types.AggregatedPart) []*ValidationError {
	var problems []*ValidationError

	warn := func(stage, rule, format string, args ...any) {
		problems = append(problems, &ValidationError{
			Severity: SeverityWarning,
			Stage:    stage,
			Rule:     rule,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	// Ordering of the distinct lines.
	for i := 1; i < len(lines); i++ {
		if lines[i-1].ItemCode > lines[i].ItemCode {
			warn(StageLines, RuleSortedByItem, "row %d item code %q sorts after row %d item code %q",
				i, lines[i-1].ItemCode, i+1, lines[i].ItemCode)
			break
		}
	}

	// Conservation across stages.
	var lineQty, linePrice decimal.Decimal
	for _, l := range lines {
		lineQty = lineQty.Add(l.QuantityList1)
		linePrice = linePrice.Add(l.ItemPrice)
	}

	stages := []struct {
		name  string
		parts []types.AggregatedPart
	}{
		{StageByCostCode, byCostCode},
		{StageByItem, byItem},
	}

	for _, s := range stages {
		qty, price := sumParts(s.parts)
		if !qty.Equal(lineQty) {
			warn(s.name, RuleQuantityConserved, "total quantity %s, want %s", qty, lineQty)
		}
		if !price.Equal(linePrice) {
			warn(s.name, RulePriceConserved, "total price %s, want %s", price, linePrice)
		}
	}

	// Group uniqueness.
	seenGroup := make(map[[3]string]bool, len(byCostCode))
	for _, p := range byCostCode {
		key := [3]string{p.ItemCode, p.CostCode, p.Description}
		if seenGroup[key] {
			warn(StageByCostCode, RuleUniqueGroup, "group (%s, %s, %s) appears more than once",
				p.ItemCode, p.CostCode, p.Description)
		}
		seenGroup[key] = true
	}

	seenItem := make(map[string]bool, len(byItem))
	for _, p := range byItem {
		if seenItem[p.ItemCode] {
			warn(StageByItem, RuleUniqueGroup, "item code %q appears more than once", p.ItemCode)
		}
		seenItem[p.ItemCode] = true
	}

	return problems
}

func sumParts(parts []types.AggregatedPart) (qty, price decimal.Decimal) {
	for _, p := range parts {
		qty = qty.Add(p.Quantity)
		price = price.Add(p.Price)
	}
	return qty, price
}
