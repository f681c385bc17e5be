package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"erp/internal/logger"
	"erp/internal/tax"
)

var documentCmd = &cobra.Command{
	Use:   "document [csv-file]",
	Short: "Compute line amounts and totals for a document",
	Long: `Compute the amounts of every line of a sales or purchase document and the
document footer. The CSV file needs a header row with the columns
quantity, unit_price and tax.

Totals are the sum of the rounded line amounts.`,
	Example: `  erp document slip.csv
  erp document slip.csv --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	rootCmd.AddCommand(documentCmd)

	documentCmd.Flags().Bool("json", false, "Output as JSON format")
}

func runDocument(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("document")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open document file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close document file")
		}
	}()

	items, err := readLineItems(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	totals, err := tax.CalculateDocument(items)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Int("lines", len(items)).
		Int64("grand_total", totals.GrandTotal).
		Msg("Document computed")

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), totals)
	}
	return writeDocument(cmd.OutOrStdout(), items, totals)
}

func writeDocument(w io.Writer, items []tax.LineItem, totals tax.DocumentTotals) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "No\t수량\t단가\t구분\t공급가액\t부가세\t합계\t")
	for i, item := range items {
		line := totals.Lines[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1,
			item.Quantity.String(),
			item.UnitPrice.String(),
			item.Regime.Label(),
			formatWon(line.SupplyAmount),
			formatWon(line.VATAmount),
			formatWon(line.TotalAmount),
		)
	}
	fmt.Fprintf(tw, "합계\t\t\t\t%s\t%s\t%s\t\n",
		formatWon(totals.SupplyAmount),
		formatWon(totals.VATAmount),
		formatWon(totals.GrandTotal),
	)
	return tw.Flush()
}
