package domain

import "github.com/shopspring/decimal"

// SlotCount is the fixed number of price slots on the form.
const SlotCount = 5

// MaxEntryLength is the longest raw entry that can be a valid price.
// Longer entries are kept cut to MaxEntryLength+1 bytes so they stay
// invalid while the form still fits in a session cookie.
const MaxEntryLength = 64

// Entries holds the raw text of each price slot, as typed.
type Entries [SlotCount]string

// Prices holds the parsed slot values. Only produced by a successful validation.
type Prices [SlotCount]decimal.Decimal

// Severity tags an alert banner.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
)

// Alert is the transient feedback banner. An empty Message hides it.
type Alert struct {
	Severity Severity
	Message  string
}

// Visible reports whether the alert has anything to show.
func (a Alert) Visible() bool {
	return a.Message != ""
}

// Result is the breakdown of a successful calculation.
type Result struct {
	Prices          Prices
	Subtotal        decimal.Decimal
	DiscountPercent int
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
}

// Form is the state of one visitor's calculator session.
// Result is non-nil only while the last submit succeeded and no reset
// happened since.
type Form struct {
	ID      string
	Entries Entries
	Alert   Alert
	Result  *Result
}
