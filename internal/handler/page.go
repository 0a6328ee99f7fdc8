package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/efreitasn/despensa/internal/domain"
	"github.com/efreitasn/despensa/internal/engine"
	"github.com/efreitasn/despensa/internal/receipt"
	"github.com/efreitasn/despensa/internal/view"
)

// PageHandler serves the HTML calculator page and its form posts.
type PageHandler struct {
	forms    *formSessions
	schedule *engine.Schedule
	fmtr     *domain.Formatter
	receipts receipt.Generator
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(forms *formSessions, schedule *engine.Schedule, fmtr *domain.Formatter, receipts receipt.Generator) *PageHandler {
	return &PageHandler{
		forms:    forms,
		schedule: schedule,
		fmtr:     fmtr,
		receipts: receipts,
	}
}

// Show handles GET /.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	f := h.forms.load(r)
	if !h.forms.save(w, r, f) {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := view.Render(w, view.NewPage(f, h.fmtr, h.schedule)); err != nil {
		h.forms.logger.Error("render page failed", slog.String("error", err.Error()))
	}
}

// Calculate handles POST /calculate.
func (h *PageHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	f := h.forms.load(r)
	for i := 0; i < domain.SlotCount; i++ {
		// Slot indexes are always in range here.
		_ = h.forms.svc.SetValue(f, i, r.PostForm.Get(view.SlotField(i)))
	}
	// A validation failure is shown through the form's alert.
	_ = h.forms.svc.Submit(f)

	h.saveAndRedirect(w, r, f)
}

// Clear handles POST /clear.
func (h *PageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	f := h.forms.load(r)
	h.forms.svc.Reset(f)
	h.saveAndRedirect(w, r, f)
}

// DismissAlert handles POST /alert/dismiss.
func (h *PageHandler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	f := h.forms.load(r)
	h.forms.svc.DismissAlert(f)
	h.saveAndRedirect(w, r, f)
}

// Receipt handles GET /receipt.pdf.
func (h *PageHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	f := h.forms.load(r)

	rec, err := receipt.FromForm(f, h.fmtr, h.schedule.Legend(), time.Now())
	if err != nil {
		mapFormError(w, err)
		return
	}

	doc, err := h.receipts.Generate(rec)
	if err != nil {
		h.forms.logger.Error("receipt generation failed",
			slog.String("form_id", f.ID),
			slog.String("error", err.Error()),
		)
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, f.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *PageHandler) saveAndRedirect(w http.ResponseWriter, r *http.Request, f *domain.Form) {
	if !h.forms.save(w, r, f) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
