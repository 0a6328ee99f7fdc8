package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDiscountPercent_Boundaries(t *testing.T) {
	tests := []struct {
		subtotal string
		want     int
	}{
		{"0", 0},
		{"999.99", 0},
		{"1000", 10},
		{"1000.00", 10},
		{"4999.99", 10},
		{"5000", 20},
		{"8999.99", 20},
		{"9000", 30},
		{"12999.99", 30},
		{"13000", 40},
		{"1000000", 40},
	}

	for _, tt := range tests {
		t.Run(tt.subtotal, func(t *testing.T) {
			got := DiscountPercent(decimal.RequireFromString(tt.subtotal))
			if got != tt.want {
				t.Errorf("DiscountPercent(%s) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestSchedule_PercentBelowLowestFloor(t *testing.T) {
	s, err := NewSchedule(Tier{Floor: decimal.NewFromInt(100), Percent: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Percent(decimal.NewFromInt(99)); got != 0 {
		t.Errorf("Percent(99) = %d, want 0", got)
	}
	if got := s.Percent(decimal.NewFromInt(100)); got != 5 {
		t.Errorf("Percent(100) = %d, want 5", got)
	}
}

func TestSchedule_Legend(t *testing.T) {
	want := "0–999.99 (0%), 1,000–4,999.99 (10%), 5,000–8,999.99 (20%), 9,000–12,999.99 (30%), 13,000+ (40%)"
	if got := DefaultSchedule().Legend(); got != want {
		t.Errorf("Legend() = %q, want %q", got, want)
	}
}

func TestSchedule_TiersAscending(t *testing.T) {
	tiers := DefaultSchedule().Tiers()
	if len(tiers) != 5 {
		t.Fatalf("got %d tiers, want 5", len(tiers))
	}
	wantPct := []int{0, 10, 20, 30, 40}
	for i, tier := range tiers {
		if tier.Percent != wantPct[i] {
			t.Errorf("tier %d percent = %d, want %d", i, tier.Percent, wantPct[i])
		}
		if i > 0 && !tiers[i-1].Floor.LessThan(tier.Floor) {
			t.Errorf("tier %d floor %s not above previous %s", i, tier.Floor, tiers[i-1].Floor)
		}
	}
}

func TestSchedule_Ranges(t *testing.T) {
	ranges := DefaultSchedule().Ranges()
	if ranges[0].Ceiling == nil || !ranges[0].Ceiling.Equal(decimal.RequireFromString("999.99")) {
		t.Errorf("first ceiling = %v, want 999.99", ranges[0].Ceiling)
	}
	if last := ranges[len(ranges)-1]; last.Ceiling != nil {
		t.Errorf("top tier ceiling = %s, want open-ended", last.Ceiling)
	}
}

func TestNewSchedule_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{"negative floor", []Tier{{Floor: decimal.NewFromInt(-1), Percent: 0}}},
		{"percent above 100", []Tier{{Floor: decimal.Zero, Percent: 101}}},
		{"negative percent", []Tier{{Floor: decimal.Zero, Percent: -5}}},
		{"duplicate floor", []Tier{
			{Floor: decimal.NewFromInt(10), Percent: 1},
			{Floor: decimal.NewFromInt(10), Percent: 2},
		}},
		{"decreasing percent", []Tier{
			{Floor: decimal.NewFromInt(10), Percent: 20},
			{Floor: decimal.NewFromInt(20), Percent: 10},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSchedule(tt.tiers...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
