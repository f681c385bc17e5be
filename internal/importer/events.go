package importer

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"erp/internal/ledger"
	"erp/pkg/models"
)

// MergeEvents tags every record with its ledger kind and returns one list
// ordered by date. Documents are identified by kind and document number,
// receipts and payments by kind and sheet row (references may repeat).
// The sort is stable: events on the same day keep the
// order sales, purchases, receipts, payments, and within a collection the
// sheet order.
func MergeEvents(data *ImportData) []ledger.Event {
	events := make([]ledger.Event, 0, len(data.Sales)+len(data.Purchases)+len(data.Receipts)+len(data.Payments))

	for _, doc := range data.Sales {
		events = append(events, documentEvent(doc, ledger.Sale))
	}
	for _, doc := range data.Purchases {
		events = append(events, documentEvent(doc, ledger.Purchase))
	}
	for _, t := range data.Receipts {
		events = append(events, transferEvent(t, ledger.Receipt))
	}
	for _, t := range data.Payments {
		events = append(events, transferEvent(t, ledger.Payment))
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

func documentEvent(doc models.Document, kind ledger.Kind) ledger.Event {
	return ledger.Event{
		ID:         fmt.Sprintf("%s:%s", kind, doc.Number),
		CustomerID: doc.CustomerID,
		Date:       doc.Date,
		Kind:       kind,
		Amount:     decimal.NewFromInt(doc.TotalAmount),
		Reference:  doc.Number,
	}
}

func transferEvent(t models.Transfer, kind ledger.Kind) ledger.Event {
	return ledger.Event{
		ID:         fmt.Sprintf("%s:row%d", kind, t.Row),
		CustomerID: t.CustomerID,
		Date:       t.Date,
		Kind:       kind,
		Amount:     t.Amount,
		Reference:  t.Reference,
		Memo:       t.Memo,
	}
}
