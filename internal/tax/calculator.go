// Package tax derives supply amount, VAT and total for sales and purchase
// line items under the three Korean VAT treatments.
//
// Amounts are whole won. Every intermediate value is an exact decimal;
// rounding is half-up at each step and only there. For inclusive prices the
// VAT is the total minus the rounded supply amount, so supply + VAT always
// equals the total.
//
// The package holds no state and never logs. All functions are safe for
// concurrent use.
package tax

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	vatRate       = decimal.RequireFromString("0.1")
	inclusiveBase = decimal.RequireFromString("1.1")

	// maxLineAmount bounds quantity × unit price so that supply, VAT and
	// total all fit in an int64.
	maxLineAmount = decimal.NewFromInt(math.MaxInt64 / 2)
)

// LineItem is one row of a sales or purchase document.
type LineItem struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Regime    Regime
}

// LineAmounts holds the derived amounts of one line item.
type LineAmounts struct {
	SupplyAmount int64 `json:"supply_amount"`
	VATAmount    int64 `json:"vat_amount"`
	TotalAmount  int64 `json:"total_amount"`
}

// DocumentTotals is the footer of a document, summed over rounded lines.
type DocumentTotals struct {
	Lines        []LineAmounts `json:"lines"`
	SupplyAmount int64         `json:"supply_amount"`
	VATAmount    int64         `json:"vat_amount"`
	GrandTotal   int64         `json:"grand_total"`
}

// ComputeLine returns the amounts for quantity × unitPrice under regime.
// Inputs are expected to be non-negative; callers that have not validated
// them should use Calculate. ComputeLine panics on an unknown regime.
func ComputeLine(quantity, unitPrice decimal.Decimal, regime Regime) LineAmounts {
	amount := quantity.Mul(unitPrice)

	switch regime {
	case Separate:
		supply := roundWon(amount)
		vat := roundWon(decimal.NewFromInt(supply).Mul(vatRate))
		return LineAmounts{SupplyAmount: supply, VATAmount: vat, TotalAmount: supply + vat}
	case Inclusive:
		total := roundWon(amount)
		supply := roundWon(decimal.NewFromInt(total).Div(inclusiveBase))
		return LineAmounts{SupplyAmount: supply, VATAmount: total - supply, TotalAmount: total}
	case Exempt:
		supply := roundWon(amount)
		return LineAmounts{SupplyAmount: supply, VATAmount: 0, TotalAmount: supply}
	}
	panic(fmt.Sprintf("tax: %v: %q", ErrUnknownRegime, string(regime)))
}

// Calculate validates item and returns its amounts. It never clamps
// negative input or substitutes a default regime.
func Calculate(item LineItem) (LineAmounts, error) {
	if err := validate(item); err != nil {
		return LineAmounts{}, err
	}
	return ComputeLine(item.Quantity, item.UnitPrice, item.Regime), nil
}

// ComputeDocument sums the rounded amounts of each line. It panics on an
// unknown regime, like ComputeLine.
func ComputeDocument(lines []LineItem) DocumentTotals {
	totals := DocumentTotals{Lines: make([]LineAmounts, 0, len(lines))}
	for _, line := range lines {
		totals.add(ComputeLine(line.Quantity, line.UnitPrice, line.Regime))
	}
	return totals
}

// CalculateDocument validates every line before summing. The returned
// *ValidationError carries the index of the first invalid line.
func CalculateDocument(lines []LineItem) (DocumentTotals, error) {
	for i, line := range lines {
		if err := validate(line); err != nil {
			err.Line = i
			return DocumentTotals{}, err
		}
	}
	return ComputeDocument(lines), nil
}

func (d *DocumentTotals) add(line LineAmounts) {
	d.Lines = append(d.Lines, line)
	d.SupplyAmount += line.SupplyAmount
	d.VATAmount += line.VATAmount
	d.GrandTotal = d.SupplyAmount + d.VATAmount
}

func validate(item LineItem) *ValidationError {
	if item.Quantity.IsNegative() {
		return newValidationError("quantity", item.Quantity, ErrNegativeQuantity)
	}
	if item.UnitPrice.IsNegative() {
		return newValidationError("unit_price", item.UnitPrice, ErrNegativeUnitPrice)
	}
	if !item.Regime.Valid() {
		return newValidationError("tax_regime", string(item.Regime), ErrUnknownRegime)
	}
	if amount := item.Quantity.Mul(item.UnitPrice); amount.GreaterThan(maxLineAmount) {
		return newValidationError("amount", amount, ErrAmountOutOfRange)
	}
	return nil
}

// roundWon rounds half-up to a whole won. Inputs are non-negative, where
// decimal's half-away-from-zero rounding is the same thing. It panics when
// the result does not fit in an int64.
func roundWon(d decimal.Decimal) int64 {
	rounded := d.Round(0)
	if !rounded.BigInt().IsInt64() {
		panic(fmt.Sprintf("tax: %v: %s", ErrAmountOutOfRange, rounded))
	}
	return rounded.IntPart()
}
