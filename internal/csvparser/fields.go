package csvparser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/spectrum-parts-list/internal/types"
)

// ErrInvalidDate is wrapped by field errors for dates no layout accepts.
var ErrInvalidDate = errors.New("invalid date")

// dateLayouts are tried in order. The export has shipped both US-style and
// ISO dates depending on the report version.
var dateLayouts = []string{
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// FieldError reports which export field could not be converted.
type FieldError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: value %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseLine converts one split export row into a PurchaseLine.
//
// Every field is trimmed. Item code and part number lose any leading run of
// characters that are not ASCII letters or digits. A blank delivery date
// becomes the zero time. The first field that fails to convert is reported
// as a *FieldError and no line is returned.
func ParseLine(fields []string) (types.PurchaseLine, error) {
	if len(fields) != types.FieldCount {
		return types.PurchaseLine{}, fmt.Errorf("%w: got %d, want %d", ErrColumnCount, len(fields), types.FieldCount)
	}

	f := make([]string, len(fields))
	for i, v := range fields {
		f[i] = strings.TrimSpace(v)
	}

	p := &fieldParser{}
	line := types.PurchaseLine{
		CompanyCode:        f[0],
		PONumber:           f[1],
		PONumberAlias:      f[2],
		PODate:             p.date("PODate", f[3]),
		LineNumber:         p.integer("line_number", f[4]),
		QuantityList1:      p.number("po_quantity_list1", f[5]),
		QuantityList2:      p.number("po_quantity_list2", f[6]),
		ItemCode:           StripCodePrefix(f[7]),
		PartNumber:         StripCodePrefix(f[8]),
		Description:        f[9],
		UnitOfMeasure:      f[10],
		ItemPrice:          p.number("item_price", f[11]),
		LineExtensionList1: p.number("line_extension_list1", f[12]),
		LineExtensionList2: p.number("line_extension_list2", f[13]),
		DeliveryDate:       p.optionalDate("delivery_date", f[14]),
		GLAccount:          f[15],
		JobNumber:          f[16],
		PhaseCode:          f[17],
		CostType:           f[18],
		ReceivedExtension:  p.number("received_extension", f[19]),
		OpenAmount:         p.number("OpenAmount", f[20]),
		Job:                f[21],
		JobName:            f[22],
		VendorCode:         f[23],
		VendorName:         f[24],
		CostCode:           f[25],
		AECostCode:         f[26],
		AECostCodeCategory: f[27],
	}

	if p.err != nil {
		return types.PurchaseLine{}, p.err
	}
	return line, nil
}

// StripCodePrefix removes the leading run of characters that are neither
// ASCII letters nor digits, e.g. "--ABC-1" becomes "ABC-1".
func StripCodePrefix(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// ParseDate parses an export date using the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// fieldParser keeps the first conversion error so ParseLine can read as a
// single struct literal.
type fieldParser struct {
	err error
}

func (p *fieldParser) fail(field, value string, err error) {
	if p.err == nil {
		p.err = &FieldError{Field: field, Value: value, Err: err}
	}
}

func (p *fieldParser) date(field, value string) time.Time {
	t, err := ParseDate(value)
	if err != nil {
		p.fail(field, value, err)
	}
	return t
}

func (p *fieldParser) optionalDate(field, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	return p.date(field, value)
}

func (p *fieldParser) integer(field, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		p.fail(field, value, err)
	}
	return n
}

func (p *fieldParser) number(field, value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		p.fail(field, value, err)
	}
	return d
}
