package model

import "time"

// Record is the sole persisted entity: one row of the registry, tagged with
// the category it belongs to. The attribute bag carries whatever field set
// the category's form submits; the store never validates its shape, so
// fields added to a form later simply read as absent on older rows.
type Record struct {
	ID         int64      `json:"id"`
	Category   string     `json:"category"`
	Attributes Attributes `json:"attributes"`
	FilePath   *string    `json:"filePath"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Transaction kinds for the stamp-duty ledger. These are the only attribute
// values with cross-record derived meaning (the running balance).
const (
	TxnAdd = "ADD"
	TxnUse = "USE"
)

// Attribute keys shared between the service, the derivations, and the
// registry field sets.
const (
	KeyTransactionKind = "transactionKind"
	KeyAmount          = "amount"
	KeyReceiptNumber   = "receiptNumber"
	KeySendDate        = "sendDate"
	KeyReceiveDate     = "receiveDate"
	KeyBookingDate     = "bookingDate"
	KeyRoom            = "room"
)
