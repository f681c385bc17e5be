package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"erp/internal/logger"
	"erp/internal/tax"
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Compute supply amount, VAT and total for one line item",
	Long: `Compute supply amount (공급가액), VAT (부가세) and total (합계) for a single
line item. The tax type is one of separate (별도), inclusive (포함) or
exempt (면세). There is no default tax type.`,
	Example: `  # VAT added on top
  erp line --qty 10 --price 1000 --tax separate

  # Price already includes VAT
  erp line --qty 10 --price 1100 --tax 포함 --json`,
	Args: cobra.NoArgs,
	RunE: runLine,
}

func init() {
	rootCmd.AddCommand(lineCmd)

	lineCmd.Flags().String("qty", "", "Quantity [REQUIRED]")
	lineCmd.Flags().String("price", "", "Unit price in won [REQUIRED]")
	lineCmd.Flags().String("tax", "", "Tax type: separate|inclusive|exempt (별도|포함|면세) [REQUIRED]")
	lineCmd.Flags().Bool("json", false, "Output as JSON format")

	lineCmd.MarkFlagRequired("qty")
	lineCmd.MarkFlagRequired("price")
	lineCmd.MarkFlagRequired("tax")
}

func runLine(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("line")

	qtyStr, _ := cmd.Flags().GetString("qty")
	priceStr, _ := cmd.Flags().GetString("price")
	taxStr, _ := cmd.Flags().GetString("tax")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	quantity, err := decimal.NewFromString(qtyStr)
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return fmt.Errorf("invalid unit price %q: %w", priceStr, err)
	}
	regime, err := tax.ParseRegime(taxStr)
	if err != nil {
		return err
	}

	amounts, err := tax.Calculate(tax.LineItem{Quantity: quantity, UnitPrice: price, Regime: regime})
	if err != nil {
		return err
	}

	log.Debug().
		Str("quantity", quantity.String()).
		Str("unit_price", price.String()).
		Str("tax", regime.String()).
		Int64("total", amounts.TotalAmount).
		Msg("Line computed")

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, amounts)
	}

	fmt.Fprintf(out, "과세구분: %s (%s)\n", regime.Label(), regime)
	fmt.Fprintf(out, "공급가액: %s\n", formatWon(amounts.SupplyAmount))
	fmt.Fprintf(out, "부가세:   %s\n", formatWon(amounts.VATAmount))
	fmt.Fprintf(out, "합계:     %s\n", formatWon(amounts.TotalAmount))
	return nil
}
