package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"erp/internal/tax"
)

// DocumentType distinguishes sales from purchase documents.
type DocumentType string

const (
	DocumentSale     DocumentType = "SALE"
	DocumentPurchase DocumentType = "PURCHASE"
)

// TransferType distinguishes money received from money paid out.
type TransferType string

const (
	TransferReceipt TransferType = "RECEIPT"
	TransferPayment TransferType = "PAYMENT"
)

// Document is a sales or purchase slip (거래명세서) with its line items.
// Amount fields are derived from the lines and never read from the source.
type Document struct {
	Number     string       // Document number, shared by all of its rows
	Type       DocumentType // SALE or PURCHASE
	CustomerID string       // Counterparty (customer or supplier) code
	Date       civil.Date   // Transaction date

	Lines []DocumentLine

	// Derived totals (whole won)
	SupplyAmount int64 // 공급가액
	VATAmount    int64 // 부가세
	TotalAmount  int64 // 합계
}

// DocumentLine is one product row of a Document.
type DocumentLine struct {
	Row       int             // Source spreadsheet row, 1-based
	Product   string          // Product name or code
	Quantity  decimal.Decimal // 수량
	UnitPrice decimal.Decimal // 단가
	TaxRegime tax.Regime      // 별도, 포함 or 면세

	SupplyAmount int64
	VATAmount    int64
	TotalAmount  int64
}

// Item returns the calculator input for the line.
func (l DocumentLine) Item() tax.LineItem {
	return tax.LineItem{
		Quantity:  l.Quantity,
		UnitPrice: l.UnitPrice,
		Regime:    l.TaxRegime,
	}
}

// Transfer is a receipt (입금) or payment (출금) record.
type Transfer struct {
	Row        int
	Reference  string
	Type       TransferType
	CustomerID string
	Date       civil.Date
	Amount     decimal.Decimal
	Memo       string
}
