package normalize

import "strings"

// CurrencyMapping binds a symbol or literal code to an ISO 4217 code.
type CurrencyMapping struct {
	Token string
	Code  string
}

// CurrencyTable is the ordered symbol/code table scanned during extraction.
// The first token found anywhere in the text wins; table order is the
// tie-break when several tokens are present.
var CurrencyTable = []CurrencyMapping{
	{Token: "$", Code: "USD"},
	{Token: "€", Code: "EUR"},
	{Token: "£", Code: "GBP"},
	{Token: "USD", Code: "USD"},
	{Token: "EUR", Code: "EUR"},
}

// Currency scans text for the first mapping token present as a substring
// (not a regex) and returns its ISO code.
func Currency(text string, table []CurrencyMapping) (string, bool) {
	for _, m := range table {
		if m.Token != "" && strings.Contains(text, m.Token) {
			return m.Code, true
		}
	}
	return "", false
}
