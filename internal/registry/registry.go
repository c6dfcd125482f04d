// Package registry is the static category configuration: the menu the UI
// renders, the field set each category's form presents, and which derived
// view (if any) applies to a category's record list. Pure data and lookups,
// no runtime behavior.
package registry

// Category identifiers. These are the partition tags stored on every record.
const (
	IncomingDirector = "incoming-director"
	IncomingGeneral  = "incoming-general"
	OutgoingMail     = "outgoing-mail"
	ExtWRPK          = "ext-wrpk"
	ExtWRPKSP        = "ext-wrpk-sp"
	Orders           = "orders"
	RegBirth         = "reg-birth"
	RegDeath         = "reg-death"
	Stamp            = "stamp"
	Meeting          = "meeting"
)

// Strategy names the derived view computed over a category's record list.
type Strategy string

const (
	// StrategyNone renders the flat list only.
	StrategyNone Strategy = "none"
	// StrategyBalance folds the list into the stamp-duty running balance.
	StrategyBalance Strategy = "balance"
	// StrategyReceipts groups outgoing mail by receipt number.
	StrategyReceipts Strategy = "receipts"
	// StrategyByDate buckets incoming mail by receive date.
	StrategyByDate Strategy = "by-date"
	// StrategyCalendar places bookings on a month grid.
	StrategyCalendar Strategy = "calendar"
)

// Field describes one input of a category's form.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Kind  string `json:"kind"` // text | date | number | select
}

// Category couples an identifier with its display label.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Menu is one top-level entry of the home grid. Selecting a menu selects
// its first category by default.
type Menu struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Icon       string     `json:"icon"`
	Categories []Category `json:"categories"`
}

// Menus mirrors the seven-entry home grid of the registry UI.
var Menus = []Menu{
	{ID: 1, Title: "Incoming registry", Icon: "inbox", Categories: []Category{
		{ID: IncomingDirector, Label: "Incoming (director/board)"},
		{ID: IncomingGeneral, Label: "Incoming (general)"},
	}},
	{ID: 2, Title: "Outgoing registry (postal)", Icon: "mail", Categories: []Category{
		{ID: OutgoingMail, Label: "Outgoing registry"},
	}},
	{ID: 3, Title: "External letters", Icon: "send", Categories: []Category{
		{ID: ExtWRPK, Label: "WRPK hospital letters"},
		{ID: ExtWRPKSP, Label: "WRPK-SP hospital letters"},
	}},
	{ID: 4, Title: "Orders / appointments", Icon: "scroll", Categories: []Category{
		{ID: Orders, Label: "Orders / appointments"},
	}},
	{ID: 5, Title: "Civil registration", Icon: "baby", Categories: []Category{
		{ID: RegBirth, Label: "Birth registration"},
		{ID: RegDeath, Label: "Death registration"},
	}},
	{ID: 6, Title: "Stamp-duty ledger", Icon: "ticket", Categories: []Category{
		{ID: Stamp, Label: "Stamp-duty card"},
	}},
	{ID: 7, Title: "Meeting rooms", Icon: "calendar", Categories: []Category{
		{ID: Meeting, Label: "Room schedule"},
	}},
}

var strategies = map[string]Strategy{
	IncomingDirector: StrategyByDate,
	IncomingGeneral:  StrategyByDate,
	OutgoingMail:     StrategyReceipts,
	Stamp:            StrategyBalance,
	Meeting:          StrategyCalendar,
}

var fields = map[string][]Field{
	IncomingDirector: {
		{Name: "receiveDate", Label: "Received", Kind: "date"},
		{Name: "docNumber", Label: "Document no.", Kind: "text"},
		{Name: "subject", Label: "Subject", Kind: "text"},
		{Name: "source", Label: "From", Kind: "text"},
	},
	IncomingGeneral: {
		{Name: "receiveDate", Label: "Received", Kind: "date"},
		{Name: "docNumber", Label: "Document no.", Kind: "text"},
		{Name: "subject", Label: "Subject", Kind: "text"},
		{Name: "source", Label: "From", Kind: "text"},
	},
	OutgoingMail: {
		{Name: "sendDate", Label: "Sent", Kind: "date"},
		{Name: "receiptNumber", Label: "Receipt no.", Kind: "text"},
		{Name: "recipientName", Label: "Recipient", Kind: "text"},
		{Name: "amount", Label: "Postage", Kind: "number"},
	},
	ExtWRPK: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "docNumber", Label: "Document no.", Kind: "text"},
		{Name: "subject", Label: "Subject", Kind: "text"},
		{Name: "recipientName", Label: "To", Kind: "text"},
	},
	ExtWRPKSP: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "docNumber", Label: "Document no.", Kind: "text"},
		{Name: "subject", Label: "Subject", Kind: "text"},
		{Name: "recipientName", Label: "To", Kind: "text"},
	},
	Orders: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "docNumber", Label: "Order no.", Kind: "text"},
		{Name: "subject", Label: "Subject", Kind: "text"},
	},
	RegBirth: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "childName", Label: "Child name", Kind: "text"},
		{Name: "source", Label: "Ward", Kind: "text"},
	},
	RegDeath: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "subject", Label: "Deceased name", Kind: "text"},
		{Name: "source", Label: "Ward", Kind: "text"},
	},
	Stamp: {
		{Name: "date", Label: "Date", Kind: "date"},
		{Name: "transactionKind", Label: "Kind", Kind: "select"},
		{Name: "amount", Label: "Amount", Kind: "number"},
		{Name: "purpose", Label: "Purpose", Kind: "text"},
	},
	Meeting: {
		{Name: "bookingDate", Label: "Date", Kind: "date"},
		{Name: "room", Label: "Room", Kind: "text"},
		{Name: "purpose", Label: "Purpose", Kind: "text"},
		{Name: "recipientName", Label: "Booked by", Kind: "text"},
	},
}

// Lookup returns the category entry for an identifier.
func Lookup(id string) (Category, bool) {
	for _, m := range Menus {
		for _, c := range m.Categories {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Category{}, false
}

// Known reports whether the identifier names a registered category.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// MenuFor returns the menu entry owning the category.
func MenuFor(id string) (Menu, bool) {
	for _, m := range Menus {
		for _, c := range m.Categories {
			if c.ID == id {
				return m, true
			}
		}
	}
	return Menu{}, false
}

// Default returns the category selected when a menu entry is opened:
// its first sub-category.
func Default(m Menu) Category {
	if len(m.Categories) == 0 {
		return Category{}
	}
	return m.Categories[0]
}

// StrategyFor returns the derived view applicable to a category.
// Categories without a derived view render the flat list only.
func StrategyFor(id string) Strategy {
	if s, ok := strategies[id]; ok {
		return s
	}
	return StrategyNone
}

// Fields returns the form field set of a category, or nil when unknown.
func Fields(id string) []Field {
	return fields[id]
}
