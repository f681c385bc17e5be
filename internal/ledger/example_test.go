package ledger_test

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"erp/internal/ledger"
)

func Example() {
	date := func(day int) civil.Date { return civil.Date{Year: 2025, Month: 1, Day: day} }
	events := []ledger.Event{
		{ID: "S-1", CustomerID: "C-7", Date: date(1), Kind: ledger.Sale, Amount: decimal.NewFromInt(100)},
		{ID: "R-1", CustomerID: "C-7", Date: date(2), Kind: ledger.Receipt, Amount: decimal.NewFromInt(60)},
		{ID: "P-1", CustomerID: "C-7", Date: date(3), Kind: ledger.Purchase, Amount: decimal.NewFromInt(30)},
	}

	fmt.Println(ledger.ComputeRunningBalances(events, decimal.Zero))
	fmt.Println(ledger.BalanceAsOf(events, date(2), decimal.Zero))

	carried, err := ledger.BalanceBefore(events, ledger.Cutoff{Mode: ledger.ExcludeEvent, Date: date(3), EventID: "P-1"}, decimal.Zero)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(carried)
	// Output:
	// [100 40 70]
	// 40
	// 40
}
