// Package receipt produces a printable copy of a calculation.
package receipt

import (
	"time"

	"github.com/efreitasn/despensa/internal/domain"
)

// Receipt is everything printed on a receipt, already formatted.
type Receipt struct {
	Number          string
	IssuedAt        time.Time
	Prices          [domain.SlotCount]string
	Subtotal        string
	DiscountPercent int
	Discount        string
	Total           string
	Legend          string
}

// Generator renders a receipt document.
type Generator interface {
	Generate(r Receipt) ([]byte, error)
}

// FromForm builds a receipt from the form's current result. It returns
// domain.ErrNoResult when there is nothing to print.
func FromForm(f *domain.Form, fmtr *domain.Formatter, legend string, now time.Time) (Receipt, error) {
	res := f.Result
	if res == nil {
		return Receipt{}, domain.ErrNoResult
	}

	r := Receipt{
		Number:          f.ID,
		IssuedAt:        now,
		Subtotal:        fmtr.Currency(res.Subtotal),
		DiscountPercent: res.DiscountPercent,
		Discount:        fmtr.Currency(res.DiscountAmount),
		Total:           fmtr.Currency(res.Total),
		Legend:          legend,
	}
	for i, p := range res.Prices {
		r.Prices[i] = fmtr.Currency(p)
	}
	return r, nil
}
