package importer

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"erp/internal/logger"
	"erp/internal/tax"
	"erp/pkg/models"
)

const (
	documentColumns = 7 // A=일자 B=전표번호 C=거래처 D=품목 E=수량 F=단가 G=과세구분
	transferColumns = 4 // A=일자 B=참조번호 C=거래처 D=금액 (E=메모 optional)
)

// DataReader reads sales, purchases, receipts and payments from a spreadsheet
type DataReader struct {
	source RangeReader
	log    zerolog.Logger
}

// NewDataReader creates a new data reader on top of source
func NewDataReader(source RangeReader) *DataReader {
	return &DataReader{
		source: source,
		log:    logger.WithComponent("import-reader"),
	}
}

// ReadAll reads the four collections named by sheets. Row level problems
// are collected in ImportData.Rejected; only failures to read a sheet at
// all are returned as errors.
func (dr *DataReader) ReadAll(ctx context.Context, sheets SheetNames) (*ImportData, error) {
	const op = "ReadAll"

	data := &ImportData{}
	var rejected []RowError
	var err error

	if data.Sales, rejected, err = dr.ReadDocuments(ctx, sheets.Sales, models.DocumentSale); err != nil {
		return nil, fmt.Errorf("%s: failed to read sales: %w", op, err)
	}
	data.Rejected = append(data.Rejected, rejected...)

	if data.Purchases, rejected, err = dr.ReadDocuments(ctx, sheets.Purchases, models.DocumentPurchase); err != nil {
		return nil, fmt.Errorf("%s: failed to read purchases: %w", op, err)
	}
	data.Rejected = append(data.Rejected, rejected...)

	if data.Receipts, rejected, err = dr.ReadTransfers(ctx, sheets.Receipts, models.TransferReceipt); err != nil {
		return nil, fmt.Errorf("%s: failed to read receipts: %w", op, err)
	}
	data.Rejected = append(data.Rejected, rejected...)

	if data.Payments, rejected, err = dr.ReadTransfers(ctx, sheets.Payments, models.TransferPayment); err != nil {
		return nil, fmt.Errorf("%s: failed to read payments: %w", op, err)
	}
	data.Rejected = append(data.Rejected, rejected...)

	dr.log.Info().
		Int("sales", len(data.Sales)).
		Int("purchases", len(data.Purchases)).
		Int("receipts", len(data.Receipts)).
		Int("payments", len(data.Payments)).
		Int("rejected_rows", len(data.Rejected)).
		Msg("Import data read")

	return data, nil
}

// ReadDocuments reads line item rows from sheetName and groups them into
// documents by document number, in order of first appearance. Supply, VAT
// and total amounts are always computed from quantity, unit price and tax
// type; the sheet's own amount columns, if any, are ignored.
//
// A document with any rejected row is dropped as a whole, so that no
// document is posted at a partial total. Its remaining rows are reported
// with ErrDocumentRejected.
func (dr *DataReader) ReadDocuments(ctx context.Context, sheetName string, docType models.DocumentType) ([]models.Document, []RowError, error) {
	const op = "ReadDocuments"

	dr.log.Info().Str("sheet", sheetName).Str("type", string(docType)).Msg("Reading documents")

	values, err := dr.source.ReadRange(ctx, sheetName+"!A:G")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, sheetName, err)
	}
	if len(values) == 0 {
		return nil, nil, nil
	}

	var (
		documents []models.Document
		rejected  []RowError
		index     = map[string]int{}
		invalid   = map[string]bool{}
	)

	for i, row := range values[1:] {
		rowNum := i + 2 // Account for header and 0-based indexing

		if isBlank(row) {
			continue
		}

		doc, line, err := dr.parseDocumentRow(row, rowNum, docType)
		if err != nil {
			dr.log.Warn().
				Err(err).
				Int("row", rowNum).
				Str("sheet", sheetName).
				Msg("Failed to parse document row, skipping")
			rejected = append(rejected, RowError{Sheet: sheetName, Row: rowNum, Err: err})
			if number := getString(row, 1); number != "" {
				invalid[number] = true
			}
			continue
		}

		pos, seen := index[doc.Number]
		if !seen {
			index[doc.Number] = len(documents)
			doc.Lines = []models.DocumentLine{line}
			documents = append(documents, doc)
			continue
		}

		existing := &documents[pos]
		if existing.Date != doc.Date || existing.CustomerID != doc.CustomerID {
			err := fmt.Errorf("%w: document %s", ErrConflictingDocument, doc.Number)
			dr.log.Warn().
				Err(err).
				Int("row", rowNum).
				Str("sheet", sheetName).
				Msg("Document row conflicts with earlier rows, skipping")
			rejected = append(rejected, RowError{Sheet: sheetName, Row: rowNum, Err: err})
			invalid[doc.Number] = true
			continue
		}
		existing.Lines = append(existing.Lines, line)
	}

	accepted := documents[:0]
	for _, doc := range documents {
		if invalid[doc.Number] {
			dr.log.Warn().
				Str("document", doc.Number).
				Str("sheet", sheetName).
				Int("lines", len(doc.Lines)).
				Msg("Document has rejected rows, skipping whole document")
			for _, line := range doc.Lines {
				rejected = append(rejected, RowError{
					Sheet: sheetName,
					Row:   line.Row,
					Err:   fmt.Errorf("%w: document %s", ErrDocumentRejected, doc.Number),
				})
			}
			continue
		}
		if err := fillAmounts(&doc); err != nil {
			return nil, nil, fmt.Errorf("%s: document %s: %w", op, doc.Number, err)
		}
		accepted = append(accepted, doc)
	}
	documents = accepted

	sort.SliceStable(rejected, func(i, j int) bool {
		return rejected[i].Row < rejected[j].Row
	})

	dr.log.Info().
		Int("total_rows", len(values)-1).
		Int("documents", len(documents)).
		Int("rejected_rows", len(rejected)).
		Str("sheet", sheetName).
		Msg("Documents read successfully")

	return documents, rejected, nil
}

// ReadTransfers reads receipt or payment rows from sheetName
func (dr *DataReader) ReadTransfers(ctx context.Context, sheetName string, transferType models.TransferType) ([]models.Transfer, []RowError, error) {
	const op = "ReadTransfers"

	dr.log.Info().Str("sheet", sheetName).Str("type", string(transferType)).Msg("Reading transfers")

	values, err := dr.source.ReadRange(ctx, sheetName+"!A:E")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, sheetName, err)
	}
	if len(values) == 0 {
		return nil, nil, nil
	}

	var transfers []models.Transfer
	var rejected []RowError
	for i, row := range values[1:] {
		rowNum := i + 2

		if isBlank(row) {
			continue
		}

		transfer, err := dr.parseTransferRow(row, rowNum, transferType)
		if err != nil {
			dr.log.Warn().
				Err(err).
				Int("row", rowNum).
				Str("sheet", sheetName).
				Msg("Failed to parse transfer row, skipping")
			rejected = append(rejected, RowError{Sheet: sheetName, Row: rowNum, Err: err})
			continue
		}
		transfers = append(transfers, transfer)
	}

	dr.log.Info().
		Int("total_rows", len(values)-1).
		Int("transfers", len(transfers)).
		Int("rejected_rows", len(rejected)).
		Str("sheet", sheetName).
		Msg("Transfers read successfully")

	return transfers, rejected, nil
}

// parseDocumentRow parses a single line item row. The line is validated
// with the tax calculator so that negative quantities or prices and unknown
// tax types are rejected here rather than clamped later.
func (dr *DataReader) parseDocumentRow(row []interface{}, rowNum int, docType models.DocumentType) (models.Document, models.DocumentLine, error) {
	const op = "parseDocumentRow"

	if len(row) < documentColumns {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: %w (%d of %d)", op, ErrMissingColumns, len(row), documentColumns)
	}

	dateStr := getString(row, 0)
	date, err := parseDate(dateStr)
	if err != nil {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: invalid date '%s' in row %d: %w", op, dateStr, rowNum, err)
	}

	number := getString(row, 1)
	if number == "" {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: missing document number in row %d", op, rowNum)
	}

	quantityStr := getString(row, 4)
	quantity, err := parseAmount(quantityStr)
	if err != nil {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: invalid quantity '%s' in row %d: %w", op, quantityStr, rowNum, err)
	}

	priceStr := getString(row, 5)
	price, err := parseAmount(priceStr)
	if err != nil {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: invalid unit price '%s' in row %d: %w", op, priceStr, rowNum, err)
	}

	regime, err := tax.ParseRegime(getString(row, 6))
	if err != nil {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: row %d: %w", op, rowNum, err)
	}

	line := models.DocumentLine{
		Row:       rowNum,
		Product:   getString(row, 3),
		Quantity:  quantity,
		UnitPrice: price,
		TaxRegime: regime,
	}
	if _, err := tax.Calculate(line.Item()); err != nil {
		return models.Document{}, models.DocumentLine{}, fmt.Errorf("%s: row %d: %w", op, rowNum, err)
	}

	doc := models.Document{
		Number:     number,
		Type:       docType,
		CustomerID: getString(row, 2),
		Date:       date,
	}
	return doc, line, nil
}

// parseTransferRow parses a single receipt or payment row
func (dr *DataReader) parseTransferRow(row []interface{}, rowNum int, transferType models.TransferType) (models.Transfer, error) {
	const op = "parseTransferRow"

	if len(row) < transferColumns {
		return models.Transfer{}, fmt.Errorf("%s: %w (%d of %d)", op, ErrMissingColumns, len(row), transferColumns)
	}

	dateStr := getString(row, 0)
	date, err := parseDate(dateStr)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%s: invalid date '%s' in row %d: %w", op, dateStr, rowNum, err)
	}

	amountStr := getString(row, 3)
	amount, err := parseAmount(amountStr)
	if err != nil {
		return models.Transfer{}, fmt.Errorf("%s: invalid amount '%s' in row %d: %w", op, amountStr, rowNum, err)
	}
	if amount.IsNegative() {
		return models.Transfer{}, fmt.Errorf("%s: row %d: %w (value: %s)", op, rowNum, ErrNegativeAmount, amount)
	}

	return models.Transfer{
		Row:        rowNum,
		Reference:  getString(row, 1),
		Type:       transferType,
		CustomerID: getString(row, 2),
		Date:       date,
		Amount:     amount,
		Memo:       getString(row, 4),
	}, nil
}

// fillAmounts computes the derived line and document amounts
func fillAmounts(doc *models.Document) error {
	items := make([]tax.LineItem, len(doc.Lines))
	for i, line := range doc.Lines {
		items[i] = line.Item()
	}

	totals, err := tax.CalculateDocument(items)
	if err != nil {
		return err
	}

	for i, amounts := range totals.Lines {
		doc.Lines[i].SupplyAmount = amounts.SupplyAmount
		doc.Lines[i].VATAmount = amounts.VATAmount
		doc.Lines[i].TotalAmount = amounts.TotalAmount
	}
	doc.SupplyAmount = totals.SupplyAmount
	doc.VATAmount = totals.VATAmount
	doc.TotalAmount = totals.GrandTotal
	return nil
}

func isBlank(row []interface{}) bool {
	for i := range row {
		if getString(row, i) != "" {
			return false
		}
	}
	return true
}
