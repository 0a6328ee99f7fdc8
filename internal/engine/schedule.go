package engine

import (
	"fmt"
	"strings"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/efreitasn/despensa/internal/domain"
)

// Tier is one discount band: subtotals at or above Floor (and below the
// next tier's floor) earn Percent.
type Tier struct {
	Floor   decimal.Decimal
	Percent int
}

// tierLess orders tiers by floor ascending.
func tierLess(a, b Tier) bool {
	return a.Floor.LessThan(b.Floor)
}

// Schedule is an immutable set of discount tiers indexed by floor.
type Schedule struct {
	tiers *btree.BTreeG[Tier]
}

// NewSchedule builds a schedule from the given tiers. Floors must be
// distinct and non-negative, percents within 0..100 and non-decreasing as
// the floor rises.
func NewSchedule(tiers ...Tier) (*Schedule, error) {
	const degree = 8
	tree := btree.NewG[Tier](degree, tierLess)
	for _, t := range tiers {
		if t.Floor.IsNegative() {
			return nil, fmt.Errorf("tier floor must be >= 0, got %s", t.Floor)
		}
		if t.Percent < 0 || t.Percent > 100 {
			return nil, fmt.Errorf("tier percent must be within 0..100, got %d", t.Percent)
		}
		if _, dup := tree.ReplaceOrInsert(t); dup {
			return nil, fmt.Errorf("duplicate tier floor %s", t.Floor)
		}
	}

	prev := -1
	var err error
	tree.Ascend(func(t Tier) bool {
		if t.Percent < prev {
			err = fmt.Errorf("tier at %s lowers the discount to %d%%", t.Floor, t.Percent)
			return false
		}
		prev = t.Percent
		return true
	})
	if err != nil {
		return nil, err
	}

	return &Schedule{tiers: tree}, nil
}

// DefaultSchedule returns the store's discount bands.
func DefaultSchedule() *Schedule {
	s, err := NewSchedule(
		Tier{Floor: decimal.NewFromInt(0), Percent: 0},
		Tier{Floor: decimal.NewFromInt(1000), Percent: 10},
		Tier{Floor: decimal.NewFromInt(5000), Percent: 20},
		Tier{Floor: decimal.NewFromInt(9000), Percent: 30},
		Tier{Floor: decimal.NewFromInt(13000), Percent: 40},
	)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSchedule = DefaultSchedule()

// DiscountPercent returns the default schedule's percent for subtotal.
func DiscountPercent(subtotal decimal.Decimal) int {
	return defaultSchedule.Percent(subtotal)
}

// Percent walks the tiers from the highest floor down and returns the
// percent of the first one whose floor is <= subtotal, or 0 when the
// subtotal is below every floor.
func (s *Schedule) Percent(subtotal decimal.Decimal) int {
	pct := 0
	s.tiers.DescendLessOrEqual(Tier{Floor: subtotal}, func(t Tier) bool {
		pct = t.Percent
		return false
	})
	return pct
}

// Tiers returns the tiers ordered by floor ascending.
func (s *Schedule) Tiers() []Tier {
	out := make([]Tier, 0, s.tiers.Len())
	s.tiers.Ascend(func(t Tier) bool {
		out = append(out, t)
		return true
	})
	return out
}

// TierRange is a tier with its display bounds.
type TierRange struct {
	Tier
	Ceiling *decimal.Decimal // nil for the open-ended top tier
}

var cent = decimal.New(1, -2)

// Ranges returns each tier with its inclusive upper bound, one cent
// below the next tier's floor.
func (s *Schedule) Ranges() []TierRange {
	tiers := s.Tiers()
	out := make([]TierRange, len(tiers))
	for i, t := range tiers {
		out[i] = TierRange{Tier: t}
		if i+1 < len(tiers) {
			c := tiers[i+1].Floor.Sub(cent)
			out[i].Ceiling = &c
		}
	}
	return out
}

var legendFormatter = domain.NewFormatter(language.English)

// Legend describes the bands for display, e.g.
// "0–999.99 (0%), 1,000–4,999.99 (10%), ..., 13,000+ (40%)".
func (s *Schedule) Legend() string {
	ranges := s.Ranges()
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		floor := legendFormatter.Number(r.Floor)
		if r.Ceiling == nil {
			parts[i] = fmt.Sprintf("%s+ (%d%%)", floor, r.Percent)
			continue
		}
		parts[i] = fmt.Sprintf("%s–%s (%d%%)", floor, legendFormatter.Number(*r.Ceiling), r.Percent)
	}
	return strings.Join(parts, ", ")
}
