package derive

import "saraban/internal/model"

// Ledger is the derived state of the stamp-duty card.
type Ledger struct {
	Added    float64 `json:"added"`
	Used     float64 `json:"used"`
	Balance  float64 `json:"balance"`
	LowStock bool    `json:"lowStock"`
}

// StampBalance folds the full stamp history into a running balance:
// sum of ADD amounts minus sum of USE amounts. It is recomputed from
// scratch on every refresh, so it self-heals from any edit or delete.
// Non-numeric or missing amounts coerce to zero.
func StampBalance(records []model.Record) Ledger {
	var l Ledger
	for _, r := range records {
		amount := r.Attributes.Num(model.KeyAmount)
		switch r.Attributes.Str(model.KeyTransactionKind) {
		case model.TxnAdd:
			l.Added += amount
		default:
			// Records without an explicit kind count as consumption,
			// matching the form's USE default.
			l.Used += amount
		}
	}
	l.Balance = l.Added - l.Used
	l.LowStock = l.Balance < LowStockThreshold
	return l
}
