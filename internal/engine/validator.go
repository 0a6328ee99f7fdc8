package engine

import (
	"strings"

	"github.com/efreitasn/despensa/internal/domain"
)

// Validate checks the slots in order and stops at the first failure.
// On success it returns the parsed prices; the raw entries are never
// coerced to numbers any other way.
func Validate(entries domain.Entries) (domain.Prices, error) {
	var prices domain.Prices
	for i, raw := range entries {
		if strings.TrimSpace(raw) == "" {
			return domain.Prices{}, &domain.ValidationError{Slot: i, Cause: domain.CauseEmpty}
		}

		if len(raw) > domain.MaxEntryLength {
			return domain.Prices{}, &domain.ValidationError{Slot: i, Cause: domain.CauseNotANumber}
		}

		p, err := domain.ParseAmount(raw)
		if err != nil {
			return domain.Prices{}, &domain.ValidationError{Slot: i, Cause: domain.CauseNotANumber}
		}

		if p.IsNegative() {
			return domain.Prices{}, &domain.ValidationError{Slot: i, Cause: domain.CauseNegative}
		}

		prices[i] = p
	}
	return prices, nil
}
