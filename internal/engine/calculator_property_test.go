package engine

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/efreitasn/despensa/internal/domain"
)

// TestProperty_BreakdownArithmetic verifies that for any five valid
// prices the breakdown is internally consistent: subtotal is the sum,
// discount is subtotal*pct/100 and total + discount == subtotal.
func TestProperty_BreakdownArithmetic(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())

	rapid.Check(t, func(t *rapid.T) {
		var entries domain.Entries
		sum := decimal.Zero
		for i := range entries {
			cents := rapid.Int64Range(0, 5_000_00).Draw(t, fmt.Sprintf("cents-%d", i))
			p := decimal.New(cents, -2)
			entries[i] = p.StringFixed(2)
			sum = sum.Add(p)
		}

		res, err := calc.Calculate(entries)
		if err != nil {
			t.Fatalf("Calculate(%v) unexpected error: %v", entries, err)
		}
		if !res.Subtotal.Equal(sum) {
			t.Fatalf("Subtotal = %s, want %s", res.Subtotal, sum)
		}
		if res.DiscountPercent != DiscountPercent(sum) {
			t.Fatalf("DiscountPercent = %d, want %d", res.DiscountPercent, DiscountPercent(sum))
		}
		wantDiscount := sum.Mul(decimal.NewFromInt(int64(res.DiscountPercent))).Div(decimal.NewFromInt(100))
		if !res.DiscountAmount.Equal(wantDiscount) {
			t.Fatalf("DiscountAmount = %s, want %s", res.DiscountAmount, wantDiscount)
		}
		if !res.Total.Add(res.DiscountAmount).Equal(res.Subtotal) {
			t.Fatalf("Total %s + Discount %s != Subtotal %s", res.Total, res.DiscountAmount, res.Subtotal)
		}
		if res.Total.IsNegative() {
			t.Fatalf("Total = %s, must not be negative", res.Total)
		}
	})
}

// TestProperty_NegativeSlotFailsAtThatSlot verifies a single negative
// price is reported at its own slot when every other slot is valid.
func TestProperty_NegativeSlotFailsAtThatSlot(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())

	rapid.Check(t, func(t *rapid.T) {
		slot := rapid.IntRange(0, domain.SlotCount-1).Draw(t, "slot")
		neg := rapid.Int64Range(1, 1_000_000).Draw(t, "neg")

		entries := domain.Entries{"1", "1", "1", "1", "1"}
		entries[slot] = fmt.Sprintf("-%d", neg)

		_, err := calc.Calculate(entries)
		ve, ok := err.(*domain.ValidationError)
		if !ok {
			t.Fatalf("expected *ValidationError, got %v", err)
		}
		if ve.Slot != slot || ve.Cause != domain.CauseNegative {
			t.Fatalf("got slot %d cause %q, want slot %d negative", ve.Slot, ve.Cause, slot)
		}
	})
}
