package xlsxwriter

import (
	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

// Column is one report column: the header text and how to read the value
// from a line.
type Column struct {
	Header string
	Value  func(p types.PurchaseLine) any
}

// Columns lists every PurchaseLine field in declaration order. The headers
// are the field names the downstream workbooks already key on.
var Columns = []Column{
	{"company_code", func(p types.PurchaseLine) any { return p.CompanyCode }},
	{"po_number", func(p types.PurchaseLine) any { return p.PONumber }},
	{"PONumber", func(p types.PurchaseLine) any { return p.PONumberAlias }},
	{"PODate", func(p types.PurchaseLine) any { return p.PODate }},
	{"line_number", func(p types.PurchaseLine) any { return p.LineNumber }},
	{"po_quantity_list1", func(p types.PurchaseLine) any { return p.QuantityList1 }},
	{"po_quantity_list2", func(p types.PurchaseLine) any { return p.QuantityList2 }},
	{"item_code", func(p types.PurchaseLine) any { return p.ItemCode }},
	{"PartNumber", func(p types.PurchaseLine) any { return p.PartNumber }},
	{"item_description", func(p types.PurchaseLine) any { return p.Description }},
	{"unit_of_measure", func(p types.PurchaseLine) any { return p.UnitOfMeasure }},
	{"item_price", func(p types.PurchaseLine) any { return p.ItemPrice }},
	{"line_extension_list1", func(p types.PurchaseLine) any { return p.LineExtensionList1 }},
	{"line_extension_list2", func(p types.PurchaseLine) any { return p.LineExtensionList2 }},
	{"delivery_date", func(p types.PurchaseLine) any { return p.DeliveryDate }},
	{"gl_account", func(p types.PurchaseLine) any { return p.GLAccount }},
	{"job_number", func(p types.PurchaseLine) any { return p.JobNumber }},
	{"phase_code", func(p types.PurchaseLine) any { return p.PhaseCode }},
	{"cost_type", func(p types.PurchaseLine) any { return p.CostType }},
	{"received_extension", func(p types.PurchaseLine) any { return p.ReceivedExtension }},
	{"OpenAmount", func(p types.PurchaseLine) any { return p.OpenAmount }},
	{"Job", func(p types.PurchaseLine) any { return p.Job }},
	{"JobName", func(p types.PurchaseLine) any { return p.JobName }},
	{"vendor_code", func(p types.PurchaseLine) any { return p.VendorCode }},
	{"VendorName", func(p types.PurchaseLine) any { return p.VendorName }},
	{"CostCode", func(p types.PurchaseLine) any { return p.CostCode }},
	{"AECostCode", func(p types.PurchaseLine) any { return p.AECostCode }},
	{"AECostCodeCategory", func(p types.PurchaseLine) any { return p.AECostCodeCategory }},
}

// Headers returns the header row for cols.
func Headers(cols []Column) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	return headers
}
