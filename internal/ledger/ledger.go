// Package ledger computes running balances for one customer's account.
//
// Every function is a left to right fold over the events in the order they
// are given. Events are never re-sorted: callers pass them ordered by date
// and then by entry order, so that a sale and a receipt on the same day keep
// the order the user recorded them in. Unsorted input still folds
// deterministically but does not describe the account chronologically.
//
// Nothing is cached between calls.
package ledger

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// StatementLine is one row of an account statement.
type StatementLine struct {
	Event   Event           `json:"event"`
	Delta   decimal.Decimal `json:"delta"`
	Balance decimal.Decimal `json:"balance"`
}

// CutoffMode selects which events count as "before" a transaction.
type CutoffMode int

const (
	// BeforeDate includes events dated strictly before Cutoff.Date.
	BeforeDate CutoffMode = iota + 1
	// ExcludeEvent includes events dated on or before Cutoff.Date that come
	// before the event Cutoff.EventID in the supplied order. The named event
	// and everything after it are left out.
	ExcludeEvent
)

func (m CutoffMode) String() string {
	switch m {
	case BeforeDate:
		return "before-date"
	case ExcludeEvent:
		return "exclude-event"
	}
	return fmt.Sprintf("CutoffMode(%d)", int(m))
}

// Cutoff describes the balance carried forward for a transaction statement.
type Cutoff struct {
	Mode    CutoffMode
	Date    civil.Date
	EventID string
}

// ComputeRunningBalances returns the balance after each event, starting
// from opening. The result has one entry per event; an empty input gives an
// empty slice.
func ComputeRunningBalances(events []Event, opening decimal.Decimal) []decimal.Decimal {
	balances := make([]decimal.Decimal, 0, len(events))
	balance := opening
	for _, e := range events {
		balance = balance.Add(SignedDelta(e))
		balances = append(balances, balance)
	}
	return balances
}

// Statement pairs every event with its signed delta and the balance after it.
func Statement(events []Event, opening decimal.Decimal) []StatementLine {
	lines := make([]StatementLine, 0, len(events))
	balance := opening
	for _, e := range events {
		delta := SignedDelta(e)
		balance = balance.Add(delta)
		lines = append(lines, StatementLine{Event: e, Delta: delta, Balance: balance})
	}
	return lines
}

// BalanceAsOf folds the events dated on or before cutoff.
func BalanceAsOf(events []Event, cutoff civil.Date, opening decimal.Decimal) decimal.Decimal {
	balance := opening
	for _, e := range events {
		if onOrBefore(e.Date, cutoff) {
			balance = balance.Add(SignedDelta(e))
		}
	}
	return balance
}

// Until returns the events dated on or before cutoff, in their given order.
func Until(events []Event, cutoff civil.Date) []Event {
	var out []Event
	for _, e := range events {
		if onOrBefore(e.Date, cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// BalanceBefore returns the balance carried forward before a transaction,
// as selected by cutoff.
func BalanceBefore(events []Event, cutoff Cutoff, opening decimal.Decimal) (decimal.Decimal, error) {
	switch cutoff.Mode {
	case BeforeDate:
		return BalanceAsOf(events, cutoff.Date.AddDays(-1), opening), nil
	case ExcludeEvent:
		stop := -1
		for i, e := range events {
			if e.ID == cutoff.EventID {
				stop = i
				break
			}
		}
		if stop < 0 {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrEventNotFound, cutoff.EventID)
		}
		return BalanceAsOf(events[:stop], cutoff.Date, opening), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnknownCutoffMode, cutoff.Mode)
}

// ForCustomer returns the events of one customer, keeping their order.
func ForCustomer(events []Event, customerID string) []Event {
	var out []Event
	for _, e := range events {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out
}

// CheckSingleCustomer returns ErrMixedCustomers if events carry more than
// one customer ID. The fold functions do not call it.
func CheckSingleCustomer(events []Event) error {
	for _, e := range events {
		if e.CustomerID != events[0].CustomerID {
			return fmt.Errorf("%w: %q and %q", ErrMixedCustomers, events[0].CustomerID, e.CustomerID)
		}
	}
	return nil
}
