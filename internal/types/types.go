// =============================================================================
// Spectrum Parts List - Shared Types
// =============================================================================
//
// This package contains the record types shared by the loader, the
// aggregation passes and the report writers:
//   - PurchaseLine   : one row of the purchasing export
//   - AggregatedPart : a summed projection used by the summary reports
//
// Records are plain values. Nothing here holds references to other records.
//
// =============================================================================

package types

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FieldCount is the number of comma-separated fields in one export row.
const FieldCount = 28

// =============================================================================
// PURCHASE LINE
// =============================================================================

// PurchaseLine represents a single purchase-order line from the export.
// Field order matches the column order of the export and of every report.
type PurchaseLine struct {
	CompanyCode string
	PONumber    string

	// PONumberAlias is the second copy of the PO number carried by the export.
	// It is written to the reports but ignored by Equal and Key.
	PONumberAlias string

	PODate        time.Time
	LineNumber    int
	QuantityList1 decimal.Decimal
	QuantityList2 decimal.Decimal

	// ItemCode and PartNumber have any leading punctuation stripped.
	ItemCode   string
	PartNumber string

	Description        string
	UnitOfMeasure      string
	ItemPrice          decimal.Decimal
	LineExtensionList1 decimal.Decimal
	LineExtensionList2 decimal.Decimal

	// DeliveryDate is the zero time when the export left it blank.
	DeliveryDate time.Time

	GLAccount          string
	JobNumber          string
	PhaseCode          string
	CostType           string
	ReceivedExtension  decimal.Decimal
	OpenAmount         decimal.Decimal
	Job                string
	JobName            string
	VendorCode         string
	VendorName         string
	CostCode           string
	AECostCode         string
	AECostCodeCategory string
}

// HasDeliveryDate reports whether the line carries a delivery date.
func (p PurchaseLine) HasDeliveryDate() bool {
	return !p.DeliveryDate.IsZero()
}

// Equal reports whether two lines carry the same values in every field
// except PONumberAlias. Decimals compare by value, so 1.0 equals 1.00.
func (p PurchaseLine) Equal(o PurchaseLine) bool {
	return p.CompanyCode == o.CompanyCode &&
		p.PONumber == o.PONumber &&
		p.PODate.Equal(o.PODate) &&
		p.LineNumber == o.LineNumber &&
		p.QuantityList1.Equal(o.QuantityList1) &&
		p.QuantityList2.Equal(o.QuantityList2) &&
		p.ItemCode == o.ItemCode &&
		p.PartNumber == o.PartNumber &&
		p.Description == o.Description &&
		p.UnitOfMeasure == o.UnitOfMeasure &&
		p.ItemPrice.Equal(o.ItemPrice) &&
		p.LineExtensionList1.Equal(o.LineExtensionList1) &&
		p.LineExtensionList2.Equal(o.LineExtensionList2) &&
		p.DeliveryDate.Equal(o.DeliveryDate) &&
		p.GLAccount == o.GLAccount &&
		p.JobNumber == o.JobNumber &&
		p.PhaseCode == o.PhaseCode &&
		p.CostType == o.CostType &&
		p.ReceivedExtension.Equal(o.ReceivedExtension) &&
		p.OpenAmount.Equal(o.OpenAmount) &&
		p.Job == o.Job &&
		p.JobName == o.JobName &&
		p.VendorCode == o.VendorCode &&
		p.VendorName == o.VendorName &&
		p.CostCode == o.CostCode &&
		p.AECostCode == o.AECostCode &&
		p.AECostCodeCategory == o.AECostCodeCategory
}

// Key returns a canonical encoding of the fields compared by Equal.
// a.Equal(b) holds exactly when a.Key() == b.Key(), so Key can be used
// as a map key for deduplication.
func (p PurchaseLine) Key() string {
	var b strings.Builder

	// Strings are length-prefixed so embedded separators cannot collide.
	str := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
		b.WriteByte('|')
	}
	// decimal.String drops trailing zeros, which makes it canonical by value.
	dec := func(d decimal.Decimal) {
		b.WriteString(d.String())
		b.WriteByte('|')
	}
	date := func(t time.Time) {
		if t.IsZero() {
			b.WriteString("-|")
			return
		}
		b.WriteString(t.UTC().Format(time.RFC3339Nano))
		b.WriteByte('|')
	}

	str(p.CompanyCode)
	str(p.PONumber)
	date(p.PODate)
	b.WriteString(strconv.Itoa(p.LineNumber))
	b.WriteByte('|')
	dec(p.QuantityList1)
	dec(p.QuantityList2)
	str(p.ItemCode)
	str(p.PartNumber)
	str(p.Description)
	str(p.UnitOfMeasure)
	dec(p.ItemPrice)
	dec(p.LineExtensionList1)
	dec(p.LineExtensionList2)
	date(p.DeliveryDate)
	str(p.GLAccount)
	str(p.JobNumber)
	str(p.PhaseCode)
	str(p.CostType)
	dec(p.ReceivedExtension)
	dec(p.OpenAmount)
	str(p.Job)
	str(p.JobName)
	str(p.VendorCode)
	str(p.VendorName)
	str(p.CostCode)
	str(p.AECostCode)
	str(p.AECostCodeCategory)

	return b.String()
}

// Hash returns a 64-bit FNV-1a digest of Key.
func (p PurchaseLine) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(p.Key()))
	return h.Sum64()
}

// =============================================================================
// AGGREGATED PART
// =============================================================================

// AggregatedPart is one summary row produced by a group-by/sum pass.
// CostCode and Description are empty when the pass groups by item code only.
type AggregatedPart struct {
	ItemCode    string
	CostCode    string
	Description string

	// Quantity is the sum of QuantityList1 over the group.
	Quantity decimal.Decimal

	// Price is the sum of ItemPrice over the group.
	Price decimal.Decimal
}

// Line projects the summary onto a PurchaseLine so that every report shares
// the same column layout. Fields outside the projection keep their zero value.
func (a AggregatedPart) Line() PurchaseLine {
	return PurchaseLine{
		ItemCode:      a.ItemCode,
		CostCode:      a.CostCode,
		Description:   a.Description,
		QuantityList1: a.Quantity,
		ItemPrice:     a.Price,
	}
}

// Lines projects a slice of summaries. See AggregatedPart.Line.
func Lines(parts []AggregatedPart) []PurchaseLine {
	lines := make([]PurchaseLine, len(parts))
	for i, a := range parts {
		lines[i] = a.Line()
	}
	return lines
}
