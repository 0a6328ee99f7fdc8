package domain

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Currency is the single currency the calculator prices in.
var Currency = currency.MustParseISO("HNL")

// CurrencySymbol is the local symbol for Currency.
const CurrencySymbol = "L"

// maxFiniteDigits bounds integer digits before a value is treated as
// infinite (float64 tops out near 1.8e308).
const maxFiniteDigits = 309

var errNotFinite = errors.New("amount is not finite")

// ParseAmount parses a locale-independent decimal such as "10.50", ".5"
// or "1e3". Surrounding whitespace is ignored. Grouping separators, hex
// literals, NaN and infinities are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, err
	}

	if d.NumDigits()+int(d.Exponent()) > maxFiniteDigits {
		return decimal.Decimal{}, errNotFinite
	}
	if f, _ := d.Float64(); math.IsInf(f, 0) {
		return decimal.Decimal{}, errNotFinite
	}
	return d, nil
}

// Formatter renders amounts for display with a locale's separators.
// Amounts are formatted from their exact decimal digits.
type Formatter struct {
	groupSep   string
	decimalSep string
}

// separatorSample prints as "1<group>234<group>567<decimal>50".
const separatorSample = 1234567.5

// NewFormatter creates a Formatter for the given locale. Locales whose
// separators cannot be read from x/text fall back to "," and ".".
func NewFormatter(tag language.Tag) *Formatter {
	f := &Formatter{groupSep: ",", decimalSep: "."}
	sample := message.NewPrinter(tag).Sprintf("%v", number.Decimal(separatorSample, number.Scale(2)))
	if group, dec, ok := separators(sample); ok {
		f.groupSep, f.decimalSep = group, dec
	}
	return f
}

func separators(sample string) (group, dec string, ok bool) {
	rest, found := strings.CutPrefix(sample, "1")
	if !found {
		return "", "", false
	}
	i := strings.Index(rest, "234")
	if i < 0 {
		return "", "", false
	}
	group, rest = rest[:i], rest[i+len("234"):]
	if rest, found = strings.CutPrefix(rest, group+"567"); !found {
		return "", "", false
	}
	if dec, found = strings.CutSuffix(rest, "50"); !found || dec == "" {
		return "", "", false
	}
	return group, dec, true
}

// Currency formats amount with the currency symbol and exactly two
// fraction digits, e.g. "L 1,000.50".
func (f *Formatter) Currency(amount decimal.Decimal) string {
	return CurrencySymbol + " " + f.localize(amount.StringFixed(2))
}

// Number formats amount with locale grouping and at most two fraction
// digits, e.g. "1,000" or "4,999.99".
func (f *Formatter) Number(amount decimal.Decimal) string {
	return f.localize(amount.Round(2).String())
}

// localize groups the integer digits of a plain decimal string in threes
// and swaps in the locale's separators.
func (f *Formatter) localize(plain string) string {
	var b strings.Builder
	if rest, neg := strings.CutPrefix(plain, "-"); neg {
		b.WriteByte('-')
		plain = rest
	}

	whole, frac, hasFrac := strings.Cut(plain, ".")
	for i := 0; i < len(whole); i++ {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(f.groupSep)
		}
		b.WriteByte(whole[i])
	}
	if hasFrac {
		b.WriteString(f.decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}
