// Package view renders the calculator page from a form's state. Nothing
// here mutates state: the page is recomputed from scratch on every request.
package view

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/efreitasn/despensa/internal/domain"
	"github.com/efreitasn/despensa/internal/engine"
)

// Title is the page heading.
const Title = "Discount Calculator · Despensa"

//go:embed page.html.tmpl
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Page is the view model of the calculator page.
type Page struct {
	Title        string
	CurrencyCode string
	Alert        *AlertView
	Slots        []SlotView
	Result       *ResultView
	Legend       string
}

// AlertView is the alert banner.
type AlertView struct {
	Severity string
	Message  string
}

// SlotView is one labelled price input.
type SlotView struct {
	ID    string
	Label string
	Value string
}

// ResultView is the formatted breakdown.
type ResultView struct {
	Subtotal        string
	DiscountPercent int
	Discount        string
	Total           string
}

// NewPage builds the view model for f.
func NewPage(f *domain.Form, fmtr *domain.Formatter, schedule *engine.Schedule) Page {
	p := Page{
		Title:        Title,
		CurrencyCode: domain.Currency.String(),
		Slots:        make([]SlotView, domain.SlotCount),
		Legend:       schedule.Legend(),
	}

	for i, v := range f.Entries {
		p.Slots[i] = SlotView{
			ID:    SlotField(i),
			Label: fmt.Sprintf("Product %d", i+1),
			Value: v,
		}
	}

	if f.Alert.Visible() {
		p.Alert = &AlertView{
			Severity: string(f.Alert.Severity),
			Message:  f.Alert.Message,
		}
	}

	if r := f.Result; r != nil {
		p.Result = &ResultView{
			Subtotal:        fmtr.Currency(r.Subtotal),
			DiscountPercent: r.DiscountPercent,
			Discount:        fmtr.Currency(r.DiscountAmount),
			Total:           fmtr.Currency(r.Total),
		}
	}

	return p
}

// SlotField is the form field name and element id of slot i.
func SlotField(i int) string {
	return fmt.Sprintf("price-%d", i)
}

// Render writes the page as HTML.
func Render(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
