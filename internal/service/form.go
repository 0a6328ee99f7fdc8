package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/efreitasn/despensa/internal/domain"
	"github.com/efreitasn/despensa/internal/engine"
)

// ResetMessage is the alert shown after the form is cleared.
const ResetMessage = "Form reset."

// EventType names a user action on the form.
type EventType string

const (
	EventChange  EventType = "change"
	EventFocus   EventType = "focus"
	EventSubmit  EventType = "submit"
	EventReset   EventType = "reset"
	EventDismiss EventType = "dismiss"
)

// Event is a single user action. Slot and Value apply to change and focus.
type Event struct {
	Type  EventType
	Slot  int
	Value string
}

// FormService applies user actions to a form session's state.
type FormService struct {
	calc   *engine.Calculator
	logger *slog.Logger
}

// NewFormService creates a new FormService.
func NewFormService(calc *engine.Calculator, logger *slog.Logger) *FormService {
	return &FormService{
		calc:   calc,
		logger: logger,
	}
}

// NewForm starts a blank form session.
func (s *FormService) NewForm() *domain.Form {
	return &domain.Form{ID: uuid.New().String()}
}

// SetValue replaces one slot's raw text. No validation happens here so
// half-typed values are kept as-is, except that values longer than
// domain.MaxEntryLength are cut to one byte over the limit.
func (s *FormService) SetValue(f *domain.Form, slot int, value string) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if len(value) > domain.MaxEntryLength {
		value = value[:domain.MaxEntryLength+1]
	}
	f.Entries[slot] = value
	s.logger.Debug("slot changed", slog.String("form_id", f.ID), slog.Int("slot", slot))
	return nil
}

// Focus clears the alert when the user moves into a slot.
func (s *FormService) Focus(f *domain.Form, slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	f.Alert.Message = ""
	return nil
}

// DismissAlert hides the alert banner.
func (s *FormService) DismissAlert(f *domain.Form) {
	f.Alert.Message = ""
}

// Submit validates and calculates. On a validation failure the previous
// result is dropped, a warning alert is set and the error is returned.
func (s *FormService) Submit(f *domain.Form) error {
	f.Alert.Message = ""

	res, err := s.calc.Calculate(f.Entries)
	if err != nil {
		f.Result = nil
		f.Alert = domain.Alert{Severity: domain.SeverityWarning, Message: err.Error()}
		s.logger.Info("calculation rejected",
			slog.String("form_id", f.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	f.Result = res
	f.Alert = domain.Alert{
		Severity: domain.SeveritySuccess,
		Message:  engine.SuccessMessage(res.DiscountPercent),
	}
	s.logger.Info("calculation completed",
		slog.String("form_id", f.ID),
		slog.String("subtotal", res.Subtotal.String()),
		slog.Int("discount_percent", res.DiscountPercent),
		slog.String("total", res.Total.String()),
	)
	return nil
}

// Reset empties every slot and drops the result.
func (s *FormService) Reset(f *domain.Form) {
	f.Entries = domain.Entries{}
	f.Result = nil
	f.Alert = domain.Alert{Severity: domain.SeverityInfo, Message: ResetMessage}
	s.logger.Debug("form reset", slog.String("form_id", f.ID))
}

// Apply dispatches an event. A submit that fails validation is not an
// Apply error: the outcome is carried by the form's alert.
func (s *FormService) Apply(f *domain.Form, ev Event) error {
	switch ev.Type {
	case EventChange:
		return s.SetValue(f, ev.Slot, ev.Value)
	case EventFocus:
		return s.Focus(f, ev.Slot)
	case EventSubmit:
		var ve *domain.ValidationError
		if err := s.Submit(f); err != nil && !errors.As(err, &ve) {
			return err
		}
		return nil
	case EventReset:
		s.Reset(f)
		return nil
	case EventDismiss:
		s.DismissAlert(f)
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownEvent, ev.Type)
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= domain.SlotCount {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}
	return nil
}
