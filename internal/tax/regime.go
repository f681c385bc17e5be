package tax

import (
	"fmt"
	"strings"
)

// Regime is the tax treatment of a line item price.
type Regime string

const (
	// Separate means the price is the supply amount; VAT is added on top.
	Separate Regime = "separate"
	// Inclusive means the price already contains VAT.
	Inclusive Regime = "inclusive"
	// Exempt means no VAT applies.
	Exempt Regime = "exempt"
)

// Regimes lists every supported regime in display order.
var Regimes = []Regime{Separate, Inclusive, Exempt}

// Labels used by the Korean back office forms and spreadsheet templates.
var regimeLabels = map[Regime]string{
	Separate:  "별도",
	Inclusive: "포함",
	Exempt:    "면세",
}

// Valid reports whether r is one of the supported regimes.
func (r Regime) Valid() bool {
	switch r {
	case Separate, Inclusive, Exempt:
		return true
	}
	return false
}

// Label returns the Korean form label for r.
func (r Regime) Label() string {
	if label, ok := regimeLabels[r]; ok {
		return label
	}
	return string(r)
}

func (r Regime) String() string {
	return string(r)
}

// ParseRegime accepts the canonical tags and the Korean labels, with or
// without the common "부가세" prefix. Empty or unknown input is an error:
// a missing tax type is never assumed to be separate.
func ParseRegime(s string) (Regime, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimPrefix(normalized, "부가세")
	normalized = strings.TrimSpace(normalized)

	switch normalized {
	case "separate", "별도", "과세":
		return Separate, nil
	case "inclusive", "포함":
		return Inclusive, nil
	case "exempt", "면세":
		return Exempt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
}
