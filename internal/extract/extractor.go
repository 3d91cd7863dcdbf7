// Package extract converts flattened document text into normalized invoice
// records using ordered pattern heuristics. Extraction never fails: fields
// that cannot be located are left missing.
package extract

import (
	"log"
	"regexp"
	"strings"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/normalize"
)

const moneyPattern = `[$€£]?\s*([\d,]+\.?\d{2})`

var (
	invoiceNumberRe = regexp.MustCompile(`(?i)(?:invoice\s*(?:no\.?|number|#)|inv\.?)\s*[:#]?\s*([a-zA-Z0-9\-/]+)`)
	dateRe          = regexp.MustCompile(`(?i)(?:date|dated|due)\s*:?\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{4}[-/]\d{2}[-/]\d{2})`)
	netTotalRe      = regexp.MustCompile(`(?i)(?:sub\s*total|net\s*amount|taxable\s*value)\s*:?\s*` + moneyPattern)
	taxAmountRe     = regexp.MustCompile(`(?i)(?:tax|vat|gst)\s*(?:total|amount)?\s*:?\s*` + moneyPattern)
	grossTotalRe    = regexp.MustCompile(`(?i)(?:total|amount\s*due|grand\s*total)\s*:?\s*` + moneyPattern)
	billToRe        = regexp.MustCompile(`(?i)bill\s*to`)
)

// Extractor populates invoice records from raw text.
type Extractor struct {
	currencies []normalize.CurrencyMapping
	logger     *log.Logger
}

// New creates an Extractor using the default currency table.
func New(logger *log.Logger) *Extractor {
	return &Extractor{currencies: normalize.CurrencyTable, logger: logger}
}

// NewWithCurrencies creates an Extractor with a custom ordered currency table.
func NewWithCurrencies(logger *log.Logger, currencies []normalize.CurrencyMapping) *Extractor {
	return &Extractor{currencies: currencies, logger: logger}
}

// Extract applies the heuristic rules to rawText and returns one record.
// Unmatched fields stay nil; line items are reserved and always empty.
func (e *Extractor) Extract(rawText string) domain.InvoiceRecord {
	rec := domain.InvoiceRecord{LineItems: []domain.LineItem{}}

	if m := invoiceNumberRe.FindStringSubmatch(rawText); m != nil {
		num := strings.TrimSpace(m[1])
		rec.InvoiceNumber = &num
	}

	e.extractDates(rawText, &rec)

	if code, ok := normalize.Currency(rawText, e.currencies); ok {
		rec.Currency = &code
	}

	rec.NetTotal = e.extractAmount(netTotalRe, rawText, "net_total")
	rec.TaxAmount = e.extractAmount(taxAmountRe, rawText, "tax_amount")
	rec.GrossTotal = e.extractAmount(grossTotalRe, rawText, "gross_total")

	e.extractParties(rawText, &rec)

	return rec
}

// extractDates scans keyword-triggered date tokens in text order. A keyword
// containing "due" reassigns due_date on every match, so the last due date
// in the document wins; the first non-due match sets invoice_date and later
// non-due matches are ignored.
func (e *Extractor) extractDates(text string, rec *domain.InvoiceRecord) {
	for _, m := range dateRe.FindAllStringSubmatch(text, -1) {
		dateStr := m[1]
		if strings.Contains(strings.ToLower(m[0]), "due") {
			d := dateStr
			rec.DueDate = &d
		} else if rec.InvoiceDate == nil {
			d := dateStr
			rec.InvoiceDate = &d
		}
	}
}

// extractAmount runs a labeled money regex; first match wins. The captured
// numeral goes through the amount normalizer so malformed tokens are dropped
// rather than stored.
func (e *Extractor) extractAmount(re *regexp.Regexp, text, field string) *domain.MoneyValue {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, err := normalize.AmountString(m[1])
	if err != nil {
		if e.logger != nil {
			e.logger.Printf("extract.Extractor: dropping unparseable %s token %q", field, m[1])
		}
		return nil
	}
	return domain.NewMoneyFromDecimal(d)
}

// extractParties applies the naive name heuristics: the first non-empty line
// is the seller, and the line after a "bill to" line is the buyer.
func (e *Extractor) extractParties(text string, rec *domain.InvoiceRecord) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) == 0 {
		return
	}

	seller := lines[0]
	rec.SellerName = &seller

	for i, line := range lines {
		if billToRe.MatchString(line) {
			if i+1 < len(lines) {
				buyer := lines[i+1]
				rec.BuyerName = &buyer
			}
			break
		}
	}
}
