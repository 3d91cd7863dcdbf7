// Package normalize converts heterogeneous textual representations of money,
// dates, and currencies into canonical values. Parse order and symbol
// precedence are explicit policy tables, not incidental code order.
package normalize

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"invoiceqc/internal/domain"
)

var (
	// ErrAbsent reports that no value was supplied at all.
	ErrAbsent = errors.New("value absent")
	// ErrUnparseable reports that a value was present but not in any
	// recognized format. Distinct from ErrAbsent by contract.
	ErrUnparseable = errors.New("value unparseable")
)

// amountCleaner strips thousands separators, whitespace, and the currency
// symbols the extractor recognizes.
var amountCleaner = strings.NewReplacer(
	",", "",
	"$", "",
	"€", "",
	"£", "",
	" ", "",
	"\t", "",
)

// Amount parses a monetary value into an exact decimal. Nil or blank input
// returns ErrAbsent; a present value that does not clean up to a valid
// decimal literal returns ErrUnparseable, never zero.
func Amount(v *domain.MoneyValue) (decimal.Decimal, error) {
	if !v.Present() {
		return decimal.Decimal{}, ErrAbsent
	}
	return AmountString(v.Raw())
}

// FormatAmount renders a decimal keeping its parsed scale, so "80.00" comes
// back out as "80.00" rather than "80".
func FormatAmount(d decimal.Decimal) string {
	if exp := -d.Exponent(); exp > 0 {
		return d.StringFixed(exp)
	}
	return d.String()
}

// AmountString parses a raw textual amount. Used by the extractor on captured
// numerals and by Amount on stored record fields.
func AmountString(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountCleaner.Replace(raw))
	if cleaned == "" {
		return decimal.Decimal{}, ErrUnparseable
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, ErrUnparseable
	}
	return d, nil
}
