package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"erp/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "erp",
	Short: "ERP CLI - VAT line amounts and customer account statements",
	Long: `ERP CLI computes supply amount, VAT and total for sales and purchase
line items (부가세 별도, 포함, 면세) and running customer balances across
sales, purchases, receipts and payments.

Documents and ledgers can be read from CSV files or imported from the
Google Sheets workbook used by the back office.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("ERP CLI executed")

		fmt.Fprintln(cmd.OutOrStdout(), "Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
