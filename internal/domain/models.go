package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceRecord is the normalized representation of one invoice document.
// Missing fields are nil pointers and marshal as JSON null; the full field
// set is always present on the wire, never omitted.
type InvoiceRecord struct {
	InvoiceNumber *string     `json:"invoice_number"`
	InvoiceDate   *string     `json:"invoice_date"`
	DueDate       *string     `json:"due_date"`
	SellerName    *string     `json:"seller_name"`
	BuyerName     *string     `json:"buyer_name"`
	Currency      *string     `json:"currency"`
	NetTotal      *MoneyValue `json:"net_total"`
	TaxAmount     *MoneyValue `json:"tax_amount"`
	GrossTotal    *MoneyValue `json:"gross_total"`
	LineItems     []LineItem  `json:"line_items"`
}

// LineItem is reserved for forward compatibility; current extraction
// heuristics never populate it.
type LineItem struct {
	Description string      `json:"description"`
	Quantity    float64     `json:"quantity"`
	UnitPrice   *MoneyValue `json:"unit_price"`
	Amount      *MoneyValue `json:"amount"`
}

// DuplicateKey returns the normalized (seller, invoice number) pair used for
// duplicate detection. Two records collide iff both components are non-empty
// and equal.
func (r *InvoiceRecord) DuplicateKey() (seller, number string) {
	if r.SellerName != nil {
		seller = strings.ToLower(strings.TrimSpace(*r.SellerName))
	}
	if r.InvoiceNumber != nil {
		number = strings.ToLower(strings.TrimSpace(*r.InvoiceNumber))
	}
	return seller, number
}

// HasInvoiceNumber reports whether invoice_number is present and non-blank.
func (r *InvoiceRecord) HasInvoiceNumber() bool { return present(r.InvoiceNumber) }

// HasSellerName reports whether seller_name is present and non-blank.
func (r *InvoiceRecord) HasSellerName() bool { return present(r.SellerName) }

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// MoneyValue holds a monetary field that may arrive as a JSON number or as a
// string like "1,150.00". The original token is kept verbatim so the record
// round-trips unchanged through adapters.
type MoneyValue struct {
	raw    string
	quoted bool
}

// NewMoney creates a MoneyValue from a textual token.
func NewMoney(raw string) *MoneyValue {
	return &MoneyValue{raw: raw, quoted: true}
}

// NewMoneyFromDecimal creates a MoneyValue carrying a canonical numeric
// token. The decimal's scale is preserved, so a parsed "1000.00" keeps its
// two decimal digits instead of collapsing to "1000".
func NewMoneyFromDecimal(d decimal.Decimal) *MoneyValue {
	raw := d.String()
	if exp := -d.Exponent(); exp > 0 {
		raw = d.StringFixed(exp)
	}
	return &MoneyValue{raw: raw, quoted: false}
}

// Raw returns the original token as text.
func (m *MoneyValue) Raw() string {
	if m == nil {
		return ""
	}
	return m.raw
}

// Present reports whether the value carries a non-blank token.
func (m *MoneyValue) Present() bool {
	return m != nil && strings.TrimSpace(m.raw) != ""
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (m *MoneyValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.raw = s
		m.quoted = true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	m.raw = n.String()
	m.quoted = false
	return nil
}

// MarshalJSON re-emits the value in its original representation. A zero
// MoneyValue carries no numeric token and marshals as null.
func (m MoneyValue) MarshalJSON() ([]byte, error) {
	if m.quoted {
		return json.Marshal(m.raw)
	}
	if m.raw == "" {
		return []byte("null"), nil
	}
	return []byte(m.raw), nil
}

// ValidationResult is the per-record outcome of applying QC rules. It is
// constructed once per validator invocation and never mutated afterwards.
type ValidationResult struct {
	InvoiceNumber *string       `json:"invoice_number"`
	IsValid       bool          `json:"is_valid"`
	Status        Status        `json:"status"`
	Errors        []string      `json:"errors"`
	Warnings      []string      `json:"warnings"`
	OriginalData  InvoiceRecord `json:"original_data"`
}

// BatchSummary holds the per-status tallies for one batch.
type BatchSummary struct {
	TotalProcessed int `json:"total_processed"`
	Approved       int `json:"approved"`
	Warnings       int `json:"warnings"`
	Rejected       int `json:"rejected"`
}

// BatchReport is the result of validating one batch, details in input order.
type BatchReport struct {
	Summary BatchSummary       `json:"summary"`
	Details []ValidationResult `json:"details"`
}
