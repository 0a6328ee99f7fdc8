package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/despensa/internal/domain"
	"github.com/efreitasn/despensa/internal/engine"
	"github.com/efreitasn/despensa/internal/service"
)

// APIHandler handles the JSON endpoints.
type APIHandler struct {
	forms *formSessions
	calc  *engine.Calculator
	fmtr  *domain.Formatter
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(forms *formSessions, calc *engine.Calculator, fmtr *domain.Formatter) *APIHandler {
	return &APIHandler{
		forms: forms,
		calc:  calc,
		fmtr:  fmtr,
	}
}

// calculateRequest is the JSON request body for POST /api/calculate.
type calculateRequest struct {
	Prices []string `json:"prices"`
}

// formattedBreakdown carries the display strings of a breakdown.
type formattedBreakdown struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	Total          string `json:"total"`
}

// breakdownResponse is a calculation result.
type breakdownResponse struct {
	Currency        string             `json:"currency"`
	Subtotal        float64            `json:"subtotal"`
	DiscountPercent int                `json:"discount_percent"`
	DiscountAmount  float64            `json:"discount_amount"`
	Total           float64            `json:"total"`
	Formatted       formattedBreakdown `json:"formatted"`
}

// calculateResponse is the JSON response for POST /api/calculate.
type calculateResponse struct {
	breakdownResponse
	Message string `json:"message"`
}

// tierResponse is a single discount band.
type tierResponse struct {
	Floor   float64  `json:"floor"`
	Ceiling *float64 `json:"ceiling"`
	Percent int      `json:"percent"`
}

// tiersResponse is the JSON response for GET /api/tiers.
type tiersResponse struct {
	Tiers  []tierResponse `json:"tiers"`
	Legend string         `json:"legend"`
}

// alertResponse is the form's alert banner.
type alertResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// formResponse is the session form's state.
type formResponse struct {
	ID      string             `json:"id"`
	Entries []string           `json:"entries"`
	Alert   *alertResponse     `json:"alert"`
	Result  *breakdownResponse `json:"result"`
}

// eventRequest is the JSON request body for POST /api/form/events.
type eventRequest struct {
	Type  string `json:"type"`
	Slot  *int   `json:"slot"`
	Value string `json:"value"`
}

// Calculate handles POST /api/calculate. It does not touch the session.
func (h *APIHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(req.Prices) != domain.SlotCount {
		WriteError(w, http.StatusBadRequest, "invalid_request", "prices must contain exactly 5 entries")
		return
	}

	var entries domain.Entries
	copy(entries[:], req.Prices)

	res, err := h.calc.Calculate(entries)
	if err != nil {
		mapFormError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, calculateResponse{
		breakdownResponse: h.breakdown(res),
		Message:           engine.SuccessMessage(res.DiscountPercent),
	})
}

// Tiers handles GET /api/tiers.
func (h *APIHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	schedule := h.calc.Schedule()
	ranges := schedule.Ranges()

	tiers := make([]tierResponse, len(ranges))
	for i, tr := range ranges {
		tiers[i] = tierResponse{
			Floor:   tr.Floor.InexactFloat64(),
			Percent: tr.Percent,
		}
		if tr.Ceiling != nil {
			c := tr.Ceiling.InexactFloat64()
			tiers[i].Ceiling = &c
		}
	}

	WriteJSON(w, http.StatusOK, tiersResponse{
		Tiers:  tiers,
		Legend: schedule.Legend(),
	})
}

// GetForm handles GET /api/form.
func (h *APIHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	f := h.forms.load(r)
	if !h.forms.save(w, r, f) {
		return
	}
	WriteJSON(w, http.StatusOK, h.form(f))
}

// ApplyEvent handles POST /api/form/events.
func (h *APIHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ev := service.Event{Type: service.EventType(req.Type), Value: req.Value}
	if ev.Type == service.EventChange || ev.Type == service.EventFocus {
		if req.Slot == nil {
			WriteError(w, http.StatusBadRequest, "invalid_request", "slot is required for change and focus events")
			return
		}
		ev.Slot = *req.Slot
	}

	f := h.forms.load(r)
	if err := h.forms.svc.Apply(f, ev); err != nil {
		mapFormError(w, err)
		return
	}
	if !h.forms.save(w, r, f) {
		return
	}
	WriteJSON(w, http.StatusOK, h.form(f))
}

func (h *APIHandler) breakdown(res *domain.Result) breakdownResponse {
	return breakdownResponse{
		Currency:        domain.Currency.String(),
		Subtotal:        res.Subtotal.InexactFloat64(),
		DiscountPercent: res.DiscountPercent,
		DiscountAmount:  res.DiscountAmount.InexactFloat64(),
		Total:           res.Total.InexactFloat64(),
		Formatted: formattedBreakdown{
			Subtotal:       h.fmtr.Currency(res.Subtotal),
			DiscountAmount: h.fmtr.Currency(res.DiscountAmount),
			Total:          h.fmtr.Currency(res.Total),
		},
	}
}

func (h *APIHandler) form(f *domain.Form) formResponse {
	resp := formResponse{
		ID:      f.ID,
		Entries: f.Entries[:],
	}
	if f.Alert.Visible() {
		resp.Alert = &alertResponse{
			Severity: string(f.Alert.Severity),
			Message:  f.Alert.Message,
		}
	}
	if f.Result != nil {
		b := h.breakdown(f.Result)
		resp.Result = &b
	}
	return resp
}

// mapFormError maps domain errors to HTTP responses.
func mapFormError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteValidationError(w, validationErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrSlotOutOfRange):
		WriteError(w, http.StatusBadRequest, "slot_out_of_range", err.Error())
	case errors.Is(err, domain.ErrUnknownEvent):
		WriteError(w, http.StatusBadRequest, "unknown_event", err.Error())
	case errors.Is(err, domain.ErrNoResult):
		WriteError(w, http.StatusNotFound, "no_result", "Nothing has been calculated yet")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
