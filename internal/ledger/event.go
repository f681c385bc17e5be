package ledger

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Kind is the type of a financial event on a customer account.
type Kind string

const (
	// Sale is an issued sales document (매출). Increases the balance.
	Sale Kind = "sale"
	// Purchase is a received purchase document (매입). Increases the balance.
	Purchase Kind = "purchase"
	// Receipt is money received from the customer (입금). Decreases the balance.
	Receipt Kind = "receipt"
	// Payment is money paid to the counterparty (출금). Decreases the balance.
	Payment Kind = "payment"
)

// Kinds lists every event kind in the order collections are merged.
var Kinds = []Kind{Sale, Purchase, Receipt, Payment}

var kindLabels = map[Kind]string{
	Sale:     "매출",
	Purchase: "매입",
	Receipt:  "입금",
	Payment:  "출금",
}

// Sign returns +1 for sales and purchases and -1 for receipts and payments.
// Purchases move the balance in the same direction as sales: the statement
// shows one combined figure per counterparty. Sign panics on an unknown kind.
func (k Kind) Sign() int {
	switch k {
	case Sale, Purchase:
		return 1
	case Receipt, Payment:
		return -1
	}
	panic(fmt.Sprintf("ledger: %v: %q", ErrUnknownKind, string(k)))
}

// Valid reports whether k is a known event kind.
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns the Korean statement label for k.
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts the canonical tags and the Korean labels.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sale", "매출":
		return Sale, nil
	case "purchase", "매입":
		return Purchase, nil
	case "receipt", "입금", "수금":
		return Receipt, nil
	case "payment", "출금", "지급":
		return Payment, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Event is an immutable snapshot of a persisted sale, purchase, receipt or
// payment. Amount is a magnitude; direction comes from Kind.
type Event struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Date       civil.Date      `json:"date"`
	Kind       Kind            `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Reference  string          `json:"reference,omitempty"`
	Memo       string          `json:"memo,omitempty"`
}

// SignedDelta is the change e applies to the running balance.
func SignedDelta(e Event) decimal.Decimal {
	if e.Kind.Sign() < 0 {
		return e.Amount.Neg()
	}
	return e.Amount
}

// onOrBefore reports whether a <= b.
func onOrBefore(a, b civil.Date) bool {
	return !a.After(b)
}
