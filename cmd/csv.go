package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"erp/internal/ledger"
	"erp/internal/tax"
)

// csvRecords reads a CSV file with a header row and returns the rows as
// maps keyed by lower-cased header name.
func csvRecords(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty CSV input")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
	}
	for _, name := range required {
		found := false
		for _, h := range header {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}

	var records []map[string]string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		record := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// readLineItems parses quantity,unit_price,tax rows.
func readLineItems(r io.Reader) ([]tax.LineItem, error) {
	records, err := csvRecords(r, "quantity", "unit_price", "tax")
	if err != nil {
		return nil, err
	}

	items := make([]tax.LineItem, 0, len(records))
	for i, rec := range records {
		line := i + 2
		quantity, err := decimal.NewFromString(rec["quantity"])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q: %w", line, rec["quantity"], err)
		}
		price, err := decimal.NewFromString(rec["unit_price"])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid unit price %q: %w", line, rec["unit_price"], err)
		}
		regime, err := tax.ParseRegime(rec["tax"])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, tax.LineItem{Quantity: quantity, UnitPrice: price, Regime: regime})
	}
	return items, nil
}

// readEvents parses id,date,kind,amount[,customer_id,reference,memo] rows
// in file order. Amounts must not be negative.
func readEvents(r io.Reader, dateLayout string) ([]ledger.Event, error) {
	records, err := csvRecords(r, "id", "date", "kind", "amount")
	if err != nil {
		return nil, err
	}

	events := make([]ledger.Event, 0, len(records))
	for i, rec := range records {
		line := i + 2
		date, err := parseDate(dateLayout, rec["date"])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, rec["date"], err)
		}
		kind, err := ledger.ParseKind(rec["kind"])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := decimal.NewFromString(rec["amount"])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, rec["amount"], err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("line %d: amount must not be negative: %s", line, amount)
		}
		events = append(events, ledger.Event{
			ID:         rec["id"],
			CustomerID: rec["customer_id"],
			Date:       date,
			Kind:       kind,
			Amount:     amount,
			Reference:  rec["reference"],
			Memo:       rec["memo"],
		})
	}
	return events, nil
}

func parseDate(layout, s string) (civil.Date, error) {
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}
