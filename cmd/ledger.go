package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"erp/internal/config"
	"erp/internal/ledger"
	"erp/internal/logger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger [csv-file]",
	Short: "Print a customer's running balance statement",
	Long: `Print the running balance after each event of a customer ledger.

The CSV file needs a header row with the columns id, date, kind and amount;
customer_id, reference and memo are optional. kind is one of sale (매출),
purchase (매입), receipt (입금) or payment (출금). Sales and purchases add to
the balance, receipts and payments subtract from it.

Rows must already be in date order, same-day rows in the order they were
entered. The file is folded exactly as given.

--as-of prints the balance including every event on or before the date.
--before and --exclude-id print the balance carried forward before a
transaction: --before counts events strictly before the date, --exclude-id
counts the events up to (not including) the named event.`,
	Example: `  # Full statement
  erp ledger events.csv

  # Balance at the end of March
  erp ledger events.csv --as-of 2025-03-31

  # Carried forward for a statement of transaction S-0042
  erp ledger events.csv --exclude-id S-0042`,
	Args: cobra.ExactArgs(1),
	RunE: runLedger,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)

	ledgerCmd.Flags().String("opening", "0", "Opening balance")
	ledgerCmd.Flags().String("customer", "", "Only use events of this customer ID")
	ledgerCmd.Flags().String("as-of", "", "Print the balance as of this date (inclusive)")
	ledgerCmd.Flags().String("before", "", "Print the balance carried forward before this date")
	ledgerCmd.Flags().String("exclude-id", "", "Print the balance carried forward before this event ID")
	ledgerCmd.Flags().Bool("json", false, "Output as JSON format")

	ledgerCmd.MarkFlagsMutuallyExclusive("as-of", "before", "exclude-id")
}

func runLedger(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ledger")

	openingStr, _ := cmd.Flags().GetString("opening")
	customerID, _ := cmd.Flags().GetString("customer")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	beforeStr, _ := cmd.Flags().GetString("before")
	excludeID, _ := cmd.Flags().GetString("exclude-id")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opening, err := decimal.NewFromString(openingStr)
	if err != nil {
		return fmt.Errorf("invalid opening balance %q: %w", openingStr, err)
	}

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close ledger file")
		}
	}()

	events, err := readEvents(file, cfg.DateFormat)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if customerID != "" {
		events = ledger.ForCustomer(events, customerID)
	}
	if err := ledger.CheckSingleCustomer(events); err != nil {
		return fmt.Errorf("%w (use --customer to select one)", err)
	}

	log.Info().
		Str("file", path).
		Int("events", len(events)).
		Str("opening", opening.String()).
		Msg("Ledger loaded")

	out := cmd.OutOrStdout()

	var cutoff *ledger.Cutoff
	switch {
	case asOfStr != "":
		asOf, err := parseDate(cfg.DateFormat, asOfStr)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", asOfStr, err)
		}
		return writeBalance(out, "잔액", ledger.BalanceAsOf(events, asOf, opening), jsonOutput)
	case beforeStr != "":
		before, err := parseDate(cfg.DateFormat, beforeStr)
		if err != nil {
			return fmt.Errorf("invalid --before date %q: %w", beforeStr, err)
		}
		cutoff = &ledger.Cutoff{Mode: ledger.BeforeDate, Date: before}
	case excludeID != "":
		cutoff = &ledger.Cutoff{Mode: ledger.ExcludeEvent, EventID: excludeID}
		for _, e := range events {
			if e.ID == excludeID {
				cutoff.Date = e.Date
				break
			}
		}
	}

	if cutoff != nil {
		balance, err := ledger.BalanceBefore(events, *cutoff, opening)
		if err != nil {
			return err
		}
		log.Debug().
			Str("mode", cutoff.Mode.String()).
			Str("balance", balance.String()).
			Msg("Carried forward balance computed")
		return writeBalance(out, "전잔액", balance, jsonOutput)
	}

	lines := ledger.Statement(events, opening)
	if jsonOutput {
		return writeJSON(out, lines)
	}
	return writeStatement(out, opening, lines)
}

func writeBalance(w io.Writer, label string, balance decimal.Decimal, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, map[string]decimal.Decimal{"balance": balance})
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", label, formatDecimal(balance))
	return err
}

func writeStatement(w io.Writer, opening decimal.Decimal, lines []ledger.StatementLine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "일자\t구분\t전표번호\t증감액\t잔액\t메모")
	fmt.Fprintf(tw, "\t전잔액\t\t\t%s\t\n", formatDecimal(opening))
	for _, line := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			line.Event.Date,
			line.Event.Kind.Label(),
			reference(line.Event),
			formatDecimal(line.Delta),
			formatDecimal(line.Balance),
			line.Event.Memo,
		)
	}
	return tw.Flush()
}

func reference(e ledger.Event) string {
	if e.Reference != "" {
		return e.Reference
	}
	return e.ID
}
