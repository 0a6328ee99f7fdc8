package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/despensa/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculator turns validated entries into a discount breakdown.
type Calculator struct {
	schedule *Schedule
}

// NewCalculator creates a Calculator using the given discount schedule.
func NewCalculator(schedule *Schedule) *Calculator {
	return &Calculator{schedule: schedule}
}

// Schedule returns the discount schedule the calculator applies.
func (c *Calculator) Schedule() *Schedule {
	return c.schedule
}

// Calculate validates entries and computes subtotal, discount and total.
// It returns a *domain.ValidationError and no result when any slot fails.
func (c *Calculator) Calculate(entries domain.Entries) (*domain.Result, error) {
	prices, err := Validate(entries)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, p := range prices {
		subtotal = subtotal.Add(p)
	}

	pct := c.schedule.Percent(subtotal)
	discount := subtotal.Mul(decimal.NewFromInt(int64(pct))).Div(hundred)

	return &domain.Result{
		Prices:          prices,
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		Total:           subtotal.Sub(discount),
	}, nil
}

// SuccessMessage is the alert shown after a successful calculation.
func SuccessMessage(pct int) string {
	return fmt.Sprintf("Calculation complete. A %d%% discount was applied.", pct)
}
