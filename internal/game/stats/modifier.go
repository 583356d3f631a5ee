package stats

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Modifier is a single named contribution to a ModifierList.
//
// Modifiers are immutable values; a list changes its contents by replacing the
// record stored under an ID. An unset LocalMultiplier is read as 1; an
// explicit zero silences the modifier.
type Modifier struct {
	// ID is unique within the owning list.
	ID string
	// Value is the raw contribution before LocalMultiplier is applied.
	Value decimal.Decimal
	// RequiredTags must all be active for the modifier to contribute.
	RequiredTags Tag
	// LocalMultiplier scales Value.
	LocalMultiplier decimal.NullDecimal
	// Unit is a display suffix such as "%".
	Unit string
}

// NewModifier returns an untagged Modifier with a multiplier of 1.
func NewModifier(id string, value decimal.Decimal) Modifier {
	return Modifier{ID: id, Value: value, LocalMultiplier: decimal.NewNullDecimal(one)}
}

// NewTaggedModifier returns a Modifier that only applies while required is active.
func NewTaggedModifier(id string, value decimal.Decimal, required Tag) Modifier {
	m := NewModifier(id, value)
	m.RequiredTags = required
	return m
}

// WithValue returns a copy of m carrying v.
func (m Modifier) WithValue(v decimal.Decimal) Modifier {
	m.Value = v
	return m
}

// WithMultiplier returns a copy of m with LocalMultiplier set to x.
func (m Modifier) WithMultiplier(x decimal.Decimal) Modifier {
	m.LocalMultiplier = decimal.NewNullDecimal(x)
	return m
}

// WithUnit returns a copy of m with Unit set to unit.
func (m Modifier) WithUnit(unit string) Modifier {
	m.Unit = unit
	return m
}

// Multiplier returns the effective local multiplier.
func (m Modifier) Multiplier() decimal.Decimal {
	if !m.LocalMultiplier.Valid {
		return one
	}
	return m.LocalMultiplier.Decimal
}

// Contribution returns Value scaled by the effective local multiplier.
func (m Modifier) Contribution() decimal.Decimal {
	return m.Value.Mul(m.Multiplier())
}

// AppliesTo reports whether m contributes under the active tags.
func (m Modifier) AppliesTo(active Tag) bool {
	return m.RequiredTags.IsSubsetOf(active)
}

// RequiredTagsString returns the required tag names, or "" when untagged.
func (m Modifier) RequiredTagsString() string {
	if m.RequiredTags == None {
		return ""
	}
	return m.RequiredTags.String()
}

func (m Modifier) String() string {
	s := m.ID + ": " + m.Value.StringFixed(2)
	if m.Unit != "" {
		s += " " + m.Unit
	}
	if m.RequiredTags != None {
		s += fmt.Sprintf(" (%s)", m.RequiredTags)
	}
	return s
}
