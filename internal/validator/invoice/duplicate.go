package invoice

import (
	"fmt"

	"invoiceqc/internal/domain"
)

// DuplicateRule returns the rule that scans the batch history for another
// record with the same normalized (seller_name, invoice_number) key. Only
// the first match is reported, so a record collects at most one duplicate
// error regardless of how many historical matches exist.
func DuplicateRule() *BuiltinRule {
	return &BuiltinRule{
		key:      "logic.duplicate",
		name:     "Logical: Duplicate Invoice Detection",
		severity: domain.SeverityError,
		fn:       checkDuplicate,
	}
}

func checkDuplicate(rc *RuleContext, rec *domain.InvoiceRecord) []Finding {
	seller, number := rec.DuplicateKey()
	if seller == "" || number == "" {
		return []Finding{{
			Passed:    true,
			FieldPath: "invoice_number",
			Message:   "Logical: Duplicate Invoice Detection: seller_name or invoice_number is empty, skipping",
		}}
	}

	for i := range rc.History {
		pastSeller, pastNumber := rc.History[i].DuplicateKey()
		if pastSeller == seller && pastNumber == number {
			return []Finding{{
				Passed:    false,
				FieldPath: "invoice_number",
				Message:   fmt.Sprintf("Duplicate invoice detected: %s from %s", *rec.InvoiceNumber, *rec.SellerName),
			}}
		}
	}
	return []Finding{{
		Passed:    true,
		FieldPath: "invoice_number",
		Message:   "Logical: Duplicate Invoice Detection: no duplicates found",
	}}
}
