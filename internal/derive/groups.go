package derive

import (
	"sort"

	"saraban/internal/model"
)

// ReceiptGroup is one postage receipt with its member totals.
type ReceiptGroup struct {
	Receipt   string  `json:"receiptNumber"`
	SendDate  string  `json:"sendDate"`
	TotalCost float64 `json:"totalCost"`
	Count     int     `json:"count"`
}

// GroupReceipts buckets outgoing-mail records by receipt number. Records
// without a receipt number land in the NoReceipt bucket rather than being
// dropped. A group's date is the sendDate of its first-seen member; it is
// not recomputed as the members' min or max. Groups are returned in
// insertion order of first appearance.
func GroupReceipts(records []model.Record) []ReceiptGroup {
	index := make(map[string]int)
	groups := make([]ReceiptGroup, 0)
	for _, r := range records {
		key := r.Attributes.Str(model.KeyReceiptNumber)
		if key == "" {
			key = NoReceipt
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ReceiptGroup{
				Receipt:  key,
				SendDate: r.Attributes.Str(model.KeySendDate),
			})
		}
		groups[i].TotalCost += r.Attributes.Num(model.KeyAmount)
		groups[i].Count++
	}
	return groups
}

// DateGroup is one receive-date bucket of incoming mail.
type DateGroup struct {
	Date    string         `json:"date"`
	Records []model.Record `json:"records"`
}

// GroupByReceiveDate buckets records by the literal receiveDate string.
// Two records carrying differently formatted spellings of the same day form
// two groups; dates are never normalized before keying. Records without a
// receive date land in the NoDate bucket. Groups are ordered descending by
// date string (most recent first), with the NoDate bucket last.
func GroupByReceiveDate(records []model.Record) []DateGroup {
	index := make(map[string]int)
	groups := make([]DateGroup, 0)
	for _, r := range records {
		key := r.Attributes.Str(model.KeyReceiveDate)
		if key == "" {
			key = NoDate
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Date: key})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Date == NoDate {
			return false
		}
		if groups[j].Date == NoDate {
			return true
		}
		return groups[i].Date > groups[j].Date
	})
	return groups
}
