// Package derive holds the pure transformations computed over a category's
// record list: the stamp-duty running balance, receipt and receive-date
// groupings, and the meeting-room month calendar. Every function here is
// stateless and re-derivable from the flat record list alone; no derived
// value is ever persisted, and no function fails on a record that
// round-tripped through the store, however old or malformed its fields.
package derive

// Sentinel bucket keys for records missing the expected grouping field.
const (
	NoReceipt = "no receipt"
	NoDate    = "no date"
)

// LowStockThreshold is the balance below which the stamp ledger is flagged
// as critical.
const LowStockThreshold = 100

// Date layouts accepted by the calendar placement. Grouping functions do
// NOT parse dates: they key on the literal string.
var dateLayouts = []string{"2006-01-02", "2006-01-02T15:04:05Z07:00"}
