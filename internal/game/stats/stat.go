package stats

import "github.com/shopspring/decimal"

// Stat is a handle to a compound value built from four lists:
//
//	total  = base·(1 + additive/100)·multiplicative + unscalable
//	result = max(min(total, cap), minValue)
//
// where cap is the modified cap when set, else the default cap, else absent.
// Both result and total are cached; the cache is reused only while no
// constituent list or the cap changed and the requested tags equal the tags
// used for the cached value.
type Stat struct {
	a   *Arena
	idx int

	// Base holds scalable flat contributions.
	Base *ModifierList
	// Unscalable holds flat contributions added after scaling.
	Unscalable *ModifierList
	// AdditiveMultipliers are summed into a single 1 + sum/100 factor.
	AdditiveMultipliers *ModifierList
	// MultiplicativeMultipliers are multiplied into a single factor.
	MultiplicativeMultipliers *ModifierList
}

func (s *Stat) node() *statNode {
	return &s.a.stats[s.idx]
}

// Name returns the attribute name.
func (s *Stat) Name() string {
	return s.node().name
}

// DefaultCap returns the cap fixed at creation.
func (s *Stat) DefaultCap() decimal.NullDecimal {
	return s.node().defaultCap
}

// ModifiedCap returns the override cap.
func (s *Stat) ModifiedCap() decimal.NullDecimal {
	return s.node().modifiedCap
}

// SetModifiedCap overrides the default cap; an invalid NullDecimal clears the override.
//
// Postcondition: the stat cache is invalidated.
func (s *Stat) SetModifiedCap(c decimal.NullDecimal) {
	n := s.node()
	n.modifiedCap = c
	n.dirty = true
}

// CapInUse returns the modified cap if set, else the default cap.
func (s *Stat) CapInUse() decimal.NullDecimal {
	n := s.node()
	if n.modifiedCap.Valid {
		return n.modifiedCap
	}
	return n.defaultCap
}

// MinValue returns the floor.
func (s *Stat) MinValue() decimal.Decimal {
	return s.node().minValue
}

// OnChange registers fn to be called with (result, uncapped) after every recomputation.
func (s *Stat) OnChange(fn func(result, uncapped decimal.Decimal)) {
	n := s.node()
	n.onChange = append(n.onChange, fn)
}

// Invalidate discards the cached value.
func (s *Stat) Invalidate() {
	s.node().dirty = true
}

// CalculateTotal returns the capped result under tags, recomputing it on a cache miss.
func (s *Stat) CalculateTotal(tags Tag) decimal.Decimal {
	n := s.node()
	if !n.dirty && n.tags.Equals(tags) {
		return n.result
	}

	base := s.Base.Total(tags)
	additive := s.AdditiveMultipliers.Factor(tags)
	multiplicative := s.MultiplicativeMultipliers.Factor(tags)
	unscalable := s.Unscalable.Total(tags)

	total := base.Mul(additive).Mul(multiplicative).Add(unscalable)
	result := total
	if c := s.CapInUse(); c.Valid {
		result = decimal.Min(result, c.Decimal)
	}
	result = decimal.Max(result, n.minValue)

	n.result = result
	n.uncapped = total
	n.tags = tags
	n.dirty = false
	s.a.rec.StatEvaluated(n.name)
	for _, fn := range n.onChange {
		fn(result, total)
	}
	return result
}

// Result returns the capped value, recomputing under the last used tags if stale.
func (s *Stat) Result() decimal.Decimal {
	s.refresh()
	return s.node().result
}

// Uncapped returns the value before the cap and floor, recomputing under the
// last used tags if stale.
func (s *Stat) Uncapped() decimal.Decimal {
	s.refresh()
	return s.node().uncapped
}

// IsOvercapped reports whether the cap currently cuts the total.
func (s *Stat) IsOvercapped() bool {
	s.refresh()
	n := s.node()
	return n.result.LessThan(n.uncapped)
}

func (s *Stat) refresh() {
	if n := s.node(); n.dirty {
		s.CalculateTotal(n.tags)
	}
}
