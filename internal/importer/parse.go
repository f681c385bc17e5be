package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006. 1. 2",
	"2006.1.2",
	"2006/01/02",
	"2006/1/2",
	"20060102",
}

var amountReplacer = strings.NewReplacer(",", "", "₩", "", "원", "", " ", "", "\u00a0", "")

// parseDate parses the date layouts used by Korean spreadsheets
// (2025-03-01, 2025.03.01, 2025. 3. 1, 2025/03/01, 20250301).
func parseDate(s string) (civil.Date, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(s), ".")
	if cleaned == "" {
		return civil.Date{}, fmt.Errorf("empty date string")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return civil.DateOf(t), nil
		}
	}
	return civil.Date{}, fmt.Errorf("unable to parse date: %s", s)
}

// parseAmount parses a number with optional thousands separators and a
// ₩ or 원 currency marker. The sign is kept: rejecting negatives is up to
// the caller.
func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", s, cleaned)
	}
	return amount, nil
}

// getString safely extracts a string value from a row slice
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	switch v := row[index].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}
