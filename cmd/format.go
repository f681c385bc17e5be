package cmd

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// formatWon renders whole won with thousands separators.
func formatWon(amount int64) string {
	return printer.Sprintf("%d", amount)
}

// formatDecimal renders a ledger amount; fractional amounts keep their digits.
func formatDecimal(amount decimal.Decimal) string {
	if amount.IsInteger() && amount.Abs().LessThan(decimal.New(1, 18)) {
		return formatWon(amount.IntPart())
	}
	return amount.String()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
