package ledger

import "errors"

var (
	// ErrUnknownKind is returned when an event kind tag is not sale,
	// purchase, receipt or payment.
	ErrUnknownKind = errors.New("unknown ledger event kind")

	// ErrUnknownCutoffMode is returned for a Cutoff without a valid Mode.
	ErrUnknownCutoffMode = errors.New("unknown cutoff mode")

	// ErrEventNotFound is returned when an ExcludeEvent cutoff names an
	// event that is not in the supplied list.
	ErrEventNotFound = errors.New("cutoff event not found")

	// ErrMixedCustomers is returned when events of more than one customer
	// are passed to a single ledger computation.
	ErrMixedCustomers = errors.New("events belong to more than one customer")
)
