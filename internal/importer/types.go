package importer

import (
	"context"
	"errors"
	"fmt"

	"erp/pkg/models"
)

var (
	// ErrMissingColumns is returned for rows shorter than the sheet layout.
	ErrMissingColumns = errors.New("row has insufficient columns")

	// ErrNegativeAmount is returned for receipts or payments below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrConflictingDocument is returned when rows sharing a document number
	// disagree on date or customer.
	ErrConflictingDocument = errors.New("document rows disagree on date or customer")

	// ErrDocumentRejected is recorded for the valid rows of a document that
	// was dropped because another of its rows was rejected.
	ErrDocumentRejected = errors.New("document rejected: another row is invalid")
)

// RangeReader reads a block of cells, e.g. "매출!A:G".
// *sheets.Service satisfies it.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// SheetNames names the four collections in the spreadsheet.
type SheetNames struct {
	Sales     string
	Purchases string
	Receipts  string
	Payments  string
}

// ImportData holds all records read from the spreadsheet.
type ImportData struct {
	Sales     []models.Document
	Purchases []models.Document
	Receipts  []models.Transfer
	Payments  []models.Transfer

	// Rejected lists the rows that were skipped, in row order per sheet.
	Rejected []RowError
}

// RowError describes a spreadsheet row that could not be imported.
type RowError struct {
	Sheet string
	Row   int
	Err   error
}

// Error implements the error interface.
func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Sheet, e.Row, e.Err)
}

// Unwrap returns the underlying error.
func (e RowError) Unwrap() error {
	return e.Err
}
