package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"erp/internal/config"
	"erp/internal/importer"
	"erp/internal/ledger"
	"erp/internal/logger"
	"erp/internal/sheets"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import transactions from Google Sheets and write a customer statement",
	Long: `Import sales, purchases, receipts and payments from Google Sheets, compute
the derived tax amounts of every sales and purchase line, and write the
running balance statement of one customer to the statement sheet.

Sales and purchase sheets use the columns
  A=일자 B=전표번호 C=거래처 D=품목 E=수량 F=단가 G=과세구분
receipt and payment sheets use
  A=일자 B=참조번호 C=거래처 D=금액 E=메모
Rows that cannot be imported are reported and skipped.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_SHEET_URL - Google Sheets URL containing the four collections`,
	Example: `  # Write the statement of customer C-001
  erp import --customer C-001

  # Statement up to the end of June, without writing
  erp import --customer C-001 --as-of 2025-06-30 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().String("customer", "", "Customer ID whose statement is produced [REQUIRED]")
	importCmd.Flags().String("as-of", "", "Only include events on or before this date")
	importCmd.Flags().String("opening", "0", "Opening balance")
	importCmd.Flags().Bool("dry-run", false, "Compute the statement but don't write to Google Sheets")
	importCmd.Flags().Int("timeout", 120, "Timeout in seconds for Google Sheets requests")

	importCmd.MarkFlagRequired("customer")
}

func runImport(cmd *cobra.Command, args []string) error {
	customerID, _ := cmd.Flags().GetString("customer")
	asOfStr, _ := cmd.Flags().GetString("as-of")
	openingStr, _ := cmd.Flags().GetString("opening")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	log := logger.WithCustomer("import", customerID)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireSheets(); err != nil {
		return err
	}

	opening, err := decimal.NewFromString(openingStr)
	if err != nil {
		return fmt.Errorf("invalid opening balance %q: %w", openingStr, err)
	}

	if timeoutSecs <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	log.Info().
		Str("as_of", asOfStr).
		Bool("dry_run", dryRun).
		Msg("Starting import")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)
	defer cancel()

	sheetsService, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	data, err := importer.NewDataReader(sheetsService).ReadAll(ctx, cfg.SheetNames())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, rejected := range data.Rejected {
		fmt.Fprintf(out, "건너뜀: %v\n", rejected)
	}

	events := ledger.ForCustomer(importer.MergeEvents(data), customerID)
	if asOfStr != "" {
		asOf, err := parseDate(cfg.DateFormat, asOfStr)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", asOfStr, err)
		}
		events = ledger.Until(events, asOf)
	}

	lines := ledger.Statement(events, opening)

	log.Info().
		Int("events", len(events)).
		Int("rejected_rows", len(data.Rejected)).
		Msg("Statement computed")

	if err := writeStatement(out, opening, lines); err != nil {
		return err
	}

	if dryRun {
		log.Info().Msg("Dry run mode: statement not written to Google Sheets")
		return nil
	}

	if err := sheetsService.WriteStatement(ctx, cfg.StatementSheet, customerID, lines); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}

	log.Info().Str("sheet", cfg.StatementSheet).Msg("Import completed successfully")
	return nil
}
