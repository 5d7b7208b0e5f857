package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(item, cc, desc, qty, price string) types.PurchaseLine {
	return types.PurchaseLine{
		ItemCode:      item,
		CostCode:      cc,
		Description:   desc,
		QuantityList1: d(qty),
		ItemPrice:     d(price),
	}
}

func part(item, cc, desc, qty, price string) types.AggregatedPart {
	return types.AggregatedPart{
		ItemCode:    item,
		CostCode:    cc,
		Description: desc,
		Quantity:    d(qty),
		Price:       d(price),
	}
}

func TestCheckTotals(t *testing.T) {
	lines := []types.PurchaseLine{
		line("ABC123", "CC1", "Widget", "2", "10.00"),
		line("ABC123", "CC1", "Widget", "3", "15.00"),
		line("XYZ", "CC2", "Bolt", "1", "0.10"),
	}
	byCostCode := []types.AggregatedPart{
		part("ABC123", "CC1", "Widget", "5", "25.00"),
		part("XYZ", "CC2", "Bolt", "1", "0.10"),
	}
	byItem := []types.AggregatedPart{
		part("ABC123", "", "", "5", "25.00"),
		part("XYZ", "", "", "1", "0.10"),
	}

	tests := []struct {
		name       string
		lines      []types.PurchaseLine
		byCostCode []types.AggregatedPart
		byItem     []types.AggregatedPart
		wantRules  []string
	}{
		{
			name:       "consistent run",
			lines:      lines,
			byCostCode: byCostCode,
			byItem:     byItem,
		},
		{
			name: "empty run",
		},
		{
			name:       "quantity lost in item summary",
			lines:      lines,
			byCostCode: byCostCode,
			byItem:     byItem[:1],
			wantRules:  []string{RuleQuantityConserved, RulePriceConserved},
		},
		{
			name:       "price drift in cost code summary",
			lines:      lines,
			byCostCode: []types.AggregatedPart{part("ABC123", "CC1", "Widget", "5", "25.01"), byCostCode[1]},
			byItem:     byItem,
			wantRules:  []string{RulePriceConserved},
		},
		{
			name:       "unsorted lines",
			lines:      []types.PurchaseLine{lines[2], lines[0], lines[1]},
			byCostCode: byCostCode,
			byItem:     byItem,
			wantRules:  []string{RuleSortedByItem},
		},
		{
			name:  "duplicate item group",
			lines: lines,
			byCostCode: []types.AggregatedPart{
				part("ABC123", "CC1", "Widget", "2", "10.00"),
				part("ABC123", "CC1", "Widget", "3", "15.00"),
				byCostCode[1],
			},
			byItem: []types.AggregatedPart{
				part("ABC123", "", "", "2", "10.00"),
				part("ABC123", "", "", "3", "15.00"),
				byItem[1],
			},
			wantRules: []string{RuleUniqueGroup, RuleUniqueGroup},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckTotals(tt.lines, tt.byCostCode, tt.byItem)
			if len(got) != len(tt.wantRules) {
				t.Fatalf("CheckTotals() = %v, want rules %v", got, tt.wantRules)
			}
			for i, p := range got {
				if p.Rule != tt.wantRules[i] {
					t.Errorf("problem %d rule = %s, want %s", i, p.Rule, tt.wantRules[i])
				}
				if p.Severity != SeverityWarning {
					t.Errorf("problem %d severity = %s, want warning", i, p.Severity)
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	e := &ValidationError{
		Severity: SeverityWarning,
		Stage:    StageByItem,
		Rule:     RuleQuantityConserved,
		Message:  "total quantity 4, want 5",
	}
	got := e.Error()
	if !strings.HasPrefix(got, "[WARNING] by_item: quantity_conserved:") {
		t.Errorf("Error() = %q", got)
	}
}
