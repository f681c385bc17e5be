package ledger

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) civil.Date {
	return civil.Date{Year: 2025, Month: 3, Day: n}
}

func event(id string, date int, kind Kind, amount int64) Event {
	return Event{
		ID:         id,
		CustomerID: "C-001",
		Date:       day(date),
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
	}
}

func assertDecimals(t *testing.T, want []int64, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, decimal.NewFromInt(want[i]).Equal(got[i]), "index %d: want %d, got %s", i, want[i], got[i])
	}
}

func assertDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.NewFromInt(want).Equal(got), "want %d, got %s", want, got)
}

func scenario() []Event {
	return []Event{
		event("s1", 1, Sale, 100),
		event("r1", 2, Receipt, 60),
		event("p1", 3, Purchase, 30),
	}
}

func TestComputeRunningBalances(t *testing.T) {
	assertDecimals(t, []int64{100, 40, 70}, ComputeRunningBalances(scenario(), decimal.Zero))
}

func TestComputeRunningBalancesOpening(t *testing.T) {
	events := append(scenario(), event("y1", 4, Payment, 500))
	assertDecimals(t, []int64{1100, 1040, 1070, 570}, ComputeRunningBalances(events, decimal.NewFromInt(1000)))
}

func TestComputeRunningBalancesFold(t *testing.T) {
	events := []Event{
		event("a", 1, Sale, 5000),
		event("b", 1, Receipt, 5000),
		event("c", 2, Purchase, 1200),
		event("d", 2, Payment, 200),
		event("e", 3, Sale, 330),
		event("f", 5, Receipt, 10000),
	}

	balances := ComputeRunningBalances(events, decimal.Zero)
	require.Len(t, balances, len(events))

	previous := decimal.Zero
	for i, e := range events {
		assert.True(t, previous.Add(SignedDelta(e)).Equal(balances[i]), "index %d", i)
		previous = balances[i]
	}
	assertDecimal(t, -8670, balances[len(balances)-1])
}

func TestComputeRunningBalancesEmpty(t *testing.T) {
	got := ComputeRunningBalances(nil, decimal.NewFromInt(42))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComputeRunningBalancesKeepsInputOrder(t *testing.T) {
	// Out of date order: the fold follows the slice as given.
	events := []Event{
		event("late", 9, Receipt, 50),
		event("early", 1, Sale, 80),
	}
	assertDecimals(t, []int64{-50, 30}, ComputeRunningBalances(events, decimal.Zero))
}

func TestComputeRunningBalancesIsIdempotent(t *testing.T) {
	events := scenario()
	first := ComputeRunningBalances(events, decimal.Zero)
	second := ComputeRunningBalances(events, decimal.Zero)
	assert.Equal(t, first, second)
	assert.Equal(t, scenario(), events)
}

func TestComputeRunningBalancesFractionalAmounts(t *testing.T) {
	events := []Event{
		{ID: "a", Date: day(1), Kind: Sale, Amount: decimal.RequireFromString("0.1")},
		{ID: "b", Date: day(1), Kind: Sale, Amount: decimal.RequireFromString("0.2")},
	}
	balances := ComputeRunningBalances(events, decimal.Zero)
	assert.True(t, decimal.RequireFromString("0.3").Equal(balances[1]))
}

func TestBalanceAsOf(t *testing.T) {
	events := scenario()

	tests := []struct {
		name   string
		cutoff civil.Date
		want   int64
	}{
		{"before first event", day(0), 0},
		{"on first event", day(1), 100},
		{"on second event", day(2), 40},
		{"after last event", day(30), 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, BalanceAsOf(events, tt.cutoff, decimal.Zero))
		})
	}
}

func TestBalanceAsOfEmpty(t *testing.T) {
	assertDecimal(t, 250, BalanceAsOf(nil, day(1), decimal.NewFromInt(250)))
}

func TestBalanceAsOfSkipsLaterEventsInUnsortedInput(t *testing.T) {
	events := []Event{
		event("a", 1, Sale, 100),
		event("b", 10, Sale, 900),
		event("c", 2, Receipt, 40),
	}
	assertDecimal(t, 60, BalanceAsOf(events, day(5), decimal.Zero))
}

func TestUntil(t *testing.T) {
	events := []Event{
		event("a", 1, Sale, 100),
		event("b", 10, Sale, 900),
		event("c", 2, Receipt, 40),
	}
	got := Until(events, day(2))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Empty(t, Until(events, day(0)))
}

func TestBalanceBeforeDate(t *testing.T) {
	events := []Event{
		event("s1", 1, Sale, 100),
		event("s2", 2, Sale, 200),
		event("r2", 2, Receipt, 50),
		event("s3", 3, Sale, 10),
	}

	got, err := BalanceBefore(events, Cutoff{Mode: BeforeDate, Date: day(2)}, decimal.Zero)
	require.NoError(t, err)
	assertDecimal(t, 100, got)
}

func TestBalanceBeforeDateCrossesMonth(t *testing.T) {
	events := []Event{
		{ID: "a", Date: civil.Date{Year: 2025, Month: 2, Day: 28}, Kind: Sale, Amount: decimal.NewFromInt(10)},
		{ID: "b", Date: civil.Date{Year: 2025, Month: 3, Day: 1}, Kind: Sale, Amount: decimal.NewFromInt(20)},
	}
	got, err := BalanceBefore(events, Cutoff{Mode: BeforeDate, Date: civil.Date{Year: 2025, Month: 3, Day: 1}}, decimal.Zero)
	require.NoError(t, err)
	assertDecimal(t, 10, got)
}

func TestBalanceBeforeExcludeEvent(t *testing.T) {
	events := []Event{
		event("s1", 1, Sale, 100),
		event("s2", 2, Sale, 200),
		event("r2", 2, Receipt, 50),
		event("s3", 2, Sale, 70),
		event("s4", 3, Sale, 10),
	}

	tests := []struct {
		name    string
		eventID string
		want    int64
	}{
		{"first event has nothing before it", "s1", 0},
		{"same day events entered earlier count", "r2", 300},
		{"later same day event", "s3", 250},
		{"last event", "s4", 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cutoff := Cutoff{Mode: ExcludeEvent, Date: events[0].Date, EventID: tt.eventID}
			for _, e := range events {
				if e.ID == tt.eventID {
					cutoff.Date = e.Date
				}
			}
			got, err := BalanceBefore(events, cutoff, decimal.Zero)
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestBalanceBeforeErrors(t *testing.T) {
	_, err := BalanceBefore(scenario(), Cutoff{Mode: ExcludeEvent, Date: day(2), EventID: "missing"}, decimal.Zero)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = BalanceBefore(scenario(), Cutoff{Date: day(2)}, decimal.Zero)
	assert.ErrorIs(t, err, ErrUnknownCutoffMode)
}

func TestBalanceBeforeEmptyDate(t *testing.T) {
	got, err := BalanceBefore(nil, Cutoff{Mode: BeforeDate, Date: day(5)}, decimal.NewFromInt(7))
	require.NoError(t, err)
	assertDecimal(t, 7, got)
}

func TestStatement(t *testing.T) {
	lines := Statement(scenario(), decimal.Zero)
	require.Len(t, lines, 3)

	assert.Equal(t, "s1", lines[0].Event.ID)
	assertDecimal(t, 100, lines[0].Delta)
	assertDecimal(t, 100, lines[0].Balance)
	assertDecimal(t, -60, lines[1].Delta)
	assertDecimal(t, 40, lines[1].Balance)
	assertDecimal(t, 30, lines[2].Delta)
	assertDecimal(t, 70, lines[2].Balance)
}

func TestSignedDelta(t *testing.T) {
	assertDecimal(t, 10, SignedDelta(event("a", 1, Sale, 10)))
	assertDecimal(t, 10, SignedDelta(event("a", 1, Purchase, 10)))
	assertDecimal(t, -10, SignedDelta(event("a", 1, Receipt, 10)))
	assertDecimal(t, -10, SignedDelta(event("a", 1, Payment, 10)))

	assert.Panics(t, func() {
		SignedDelta(event("a", 1, Kind("refund"), 10))
	})
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"sale":     Sale,
		" SALE ":   Sale,
		"매출":       Sale,
		"purchase": Purchase,
		"매입":       Purchase,
		"receipt":  Receipt,
		"입금":       Receipt,
		"payment":  Payment,
		"출금":       Payment,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("refund")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "매출", Sale.Label())
	assert.Equal(t, "출금", Payment.Label())
	assert.True(t, Receipt.Valid())
	assert.False(t, Kind("refund").Valid())
}

func TestCheckSingleCustomer(t *testing.T) {
	assert.NoError(t, CheckSingleCustomer(nil))
	assert.NoError(t, CheckSingleCustomer(scenario()))

	events := append(scenario(), Event{ID: "x", CustomerID: "C-002", Date: day(4), Kind: Sale, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, CheckSingleCustomer(events), ErrMixedCustomers)
}

func TestForCustomer(t *testing.T) {
	events := append(scenario(), Event{ID: "x", CustomerID: "C-002", Date: day(2), Kind: Sale, Amount: decimal.NewFromInt(1)})

	got := ForCustomer(events, "C-001")
	require.Len(t, got, 3)
	assert.Equal(t, []string{"s1", "r1", "p1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Empty(t, ForCustomer(events, "C-404"))
}
