package stats

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Attribute names used for Stat lookup, summaries and build documents.
const (
	NameFlatAttackDamage   = "FlatAttackDamage"
	NameFlatAbilityDamage  = "FlatAbilityDamage"
	NameHealth             = "Health"
	NameDefense            = "Defense"
	NameTrueDefense        = "TrueDefense"
	NameSpeed              = "Speed"
	NameStrength           = "Strength"
	NameIntelligence       = "Intelligence"
	NameCritChancePercent  = "CritChancePercent"
	NameCritDamagePercent  = "CritDamagePercent"
	NameAttackSpeedPercent = "AttackSpeedPercent"
	NameFerocity           = "Ferocity"
	NameAbilityDamage      = "AbilityDamagePercent"
	NameMagicFind          = "MagicFind"
	NamePetLuck            = "PetLuck"
	NameSeaCreatureChance  = "SeaCreatureChance"

	NameIncreasedDamageMelee  = "IncreasedDamageMeleePercent"
	NameIncreasedDamageRanged = "IncreasedDamageRangedPercent"
	NameIncreasedDamageMagic  = "IncreasedDamageMagicPercent"
	NameMoreDamage            = "MoreDamagePercent"
	NameDamageReduction       = "DamageReductionPercent"
	NameMana                  = "Mana"
)

// Stats is the aggregate root of one character build: every attribute Stat,
// the damage multiplier lists, weapon scalars and the active conditional tags.
//
// All Stat and ModifierList handles of a Stats live in its private Arena and
// are never shared with another Stats. It is not safe for concurrent use.
type Stats struct {
	arena           *Arena
	conditionalTags Tag

	// IntelligenceScaleFactor scales intelligence for magic damage.
	IntelligenceScaleFactor decimal.Decimal
	// AbilityCooldown is the seconds between casts in magic mode.
	AbilityCooldown decimal.Decimal
	// DungeonStars is the catacombs star bonus granted by dungeoneering.
	DungeonStars decimal.Decimal

	FlatAttackDamage     *Stat
	FlatAbilityDamage    *Stat
	Health               *Stat
	Defense              *Stat
	TrueDefense          *Stat
	Speed                *Stat
	Strength             *Stat
	Intelligence         *Stat
	CritChancePercent    *Stat
	CritDamagePercent    *Stat
	AttackSpeedPercent   *Stat
	Ferocity             *Stat
	AbilityDamagePercent *Stat
	MagicFind            *Stat
	PetLuck              *Stat
	SeaCreatureChance    *Stat

	IncreasedDamageMeleePercent  *ModifierList
	IncreasedDamageRangedPercent *ModifierList
	IncreasedDamageMagicPercent  *ModifierList
	// MoreDamagePercent is a Product list; its total is the combined bonus fraction.
	MoreDamagePercent *ModifierList
	// DamageReductionPercent is an InverseProduct list; its total is the combined reduction fraction.
	DamageReductionPercent *ModifierList
}

// New creates a Stats with every attribute empty and no conditional tags.
func New(opts ...ArenaOption) *Stats {
	a := NewArena(opts...)
	hundred := decimal.NewFromInt(100)
	s := &Stats{
		arena:           a,
		AbilityCooldown: one,
	}
	s.FlatAttackDamage = a.NewStat(NameFlatAttackDamage)
	s.FlatAbilityDamage = a.NewStat(NameFlatAbilityDamage)
	s.Health = a.NewStat(NameHealth)
	s.Defense = a.NewStat(NameDefense)
	s.TrueDefense = a.NewStat(NameTrueDefense)
	s.Speed = a.NewStat(NameSpeed, WithDefaultCap(decimal.NewFromInt(400)))
	s.Strength = a.NewStat(NameStrength)
	s.Intelligence = a.NewStat(NameIntelligence)
	s.CritChancePercent = a.NewStat(NameCritChancePercent, WithDefaultCap(hundred))
	s.CritDamagePercent = a.NewStat(NameCritDamagePercent)
	s.AttackSpeedPercent = a.NewStat(NameAttackSpeedPercent, WithDefaultCap(hundred))
	s.Ferocity = a.NewStat(NameFerocity)
	s.AbilityDamagePercent = a.NewStat(NameAbilityDamage)
	s.MagicFind = a.NewStat(NameMagicFind)
	s.PetLuck = a.NewStat(NamePetLuck)
	s.SeaCreatureChance = a.NewStat(NameSeaCreatureChance, WithDefaultCap(hundred))

	s.IncreasedDamageMeleePercent = a.NewList(NameIncreasedDamageMelee, Sum)
	s.IncreasedDamageRangedPercent = a.NewList(NameIncreasedDamageRanged, Sum)
	s.IncreasedDamageMagicPercent = a.NewList(NameIncreasedDamageMagic, Sum)
	s.MoreDamagePercent = a.NewList(NameMoreDamage, Product)
	s.DamageReductionPercent = a.NewList(NameDamageReduction, InverseProduct)
	return s
}

// Recorder returns the Recorder observing this build's evaluations.
func (s *Stats) Recorder() Recorder {
	return s.arena.Recorder()
}

// AddBaseStats seeds the baseline every character starts with.
//
// Precondition: called once per Stats.
// Postcondition: Returns an error wrapping ErrDuplicateKey if called twice.
func (s *Stats) AddBaseStats() error {
	seeds := []struct {
		stat  *Stat
		value int64
	}{
		{s.FlatAttackDamage, 5},
		{s.Health, 100},
		{s.Speed, 100},
		{s.CritChancePercent, 30},
		{s.CritDamagePercent, 50},
		{s.SeaCreatureChance, 20},
	}
	for _, sd := range seeds {
		if err := sd.stat.Base.Add(NewModifier("Base", decimal.NewFromInt(sd.value))); err != nil {
			return err
		}
	}
	return nil
}

// ConditionalTags returns the active tag set.
func (s *Stats) ConditionalTags() Tag {
	return s.conditionalTags
}

// AddConditionalTag activates tag. Totals are recomputed lazily on the next read.
func (s *Stats) AddConditionalTag(tag Tag) {
	s.conditionalTags = s.conditionalTags.Union(tag)
}

// RemoveConditionalTag deactivates tag. Totals are recomputed lazily on the next read.
func (s *Stats) RemoveConditionalTag(tag Tag) {
	s.conditionalTags = s.conditionalTags.Without(tag)
}

// Total returns the capped result of st under the active tags.
func (s *Stats) Total(st *Stat) decimal.Decimal {
	return st.CalculateTotal(s.conditionalTags)
}

// ListTotal returns the total of l under the active tags.
func (s *Stats) ListTotal(l *ModifierList) decimal.Decimal {
	return l.Total(s.conditionalTags)
}

// Mana returns intelligence plus the base pool of 100.
func (s *Stats) Mana() decimal.Decimal {
	return s.Total(s.Intelligence).Add(decimal.NewFromInt(100))
}

// AllStats returns every attribute Stat in declaration order.
func (s *Stats) AllStats() []*Stat {
	out := make([]*Stat, 0, 16)
	for _, p := range s.statFields() {
		out = append(out, *p)
	}
	return out
}

// AllLists returns the standalone damage lists in declaration order.
func (s *Stats) AllLists() []*ModifierList {
	out := make([]*ModifierList, 0, 5)
	for _, p := range s.listFields() {
		out = append(out, *p)
	}
	return out
}

// Stat returns the attribute named name (case-insensitive).
func (s *Stats) Stat(name string) (*Stat, bool) {
	for _, st := range s.AllStats() {
		if strings.EqualFold(st.Name(), name) {
			return st, true
		}
	}
	return nil, false
}

// List resolves a target of the form "<Stat>.<base|unscalable|additive|multiplicative>"
// or the name of a standalone damage list.
func (s *Stats) List(target string) (*ModifierList, error) {
	statName, part, found := strings.Cut(target, ".")
	if !found {
		for _, l := range s.AllLists() {
			if strings.EqualFold(l.Name(), target) {
				return l, nil
			}
		}
		return nil, fmt.Errorf("unknown modifier list %q", target)
	}
	st, ok := s.Stat(statName)
	if !ok {
		return nil, fmt.Errorf("unknown stat %q in target %q", statName, target)
	}
	switch strings.ToLower(part) {
	case "base":
		return st.Base, nil
	case "unscalable":
		return st.Unscalable, nil
	case "additive":
		return st.AdditiveMultipliers, nil
	case "multiplicative":
		return st.MultiplicativeMultipliers, nil
	default:
		return nil, fmt.Errorf("unknown list %q in target %q", part, target)
	}
}

// RecalculateAll forces every Stat and damage list to be current under the active tags.
func (s *Stats) RecalculateAll() {
	for _, st := range s.AllStats() {
		st.CalculateTotal(s.conditionalTags)
	}
	for _, l := range s.AllLists() {
		l.Total(s.conditionalTags)
	}
}

// Clone returns a deep copy with independent, uncached state. Value-changed
// hooks registered on the original are not copied. The copy shares the
// original's Recorder, so counts from both land in one place; pass
// WithRecorder to give the copy its own.
func (s *Stats) Clone(opts ...ArenaOption) *Stats {
	c := &Stats{
		arena:                   s.arena.Clone(opts...),
		conditionalTags:         s.conditionalTags,
		IntelligenceScaleFactor: s.IntelligenceScaleFactor,
		AbilityCooldown:         s.AbilityCooldown,
		DungeonStars:            s.DungeonStars,
	}
	src, dst := s.statFields(), c.statFields()
	for i := range src {
		*dst[i] = c.arena.statHandle((*src[i]).idx)
	}
	srcL, dstL := s.listFields(), c.listFields()
	for i := range srcL {
		*dstL[i] = c.arena.listHandle((*srcL[i]).idx)
	}
	return c
}

func (s *Stats) statFields() []**Stat {
	return []**Stat{
		&s.FlatAttackDamage, &s.FlatAbilityDamage, &s.Health, &s.Defense,
		&s.TrueDefense, &s.Speed, &s.Strength, &s.Intelligence,
		&s.CritChancePercent, &s.CritDamagePercent, &s.AttackSpeedPercent, &s.Ferocity,
		&s.AbilityDamagePercent, &s.MagicFind, &s.PetLuck, &s.SeaCreatureChance,
	}
}

func (s *Stats) listFields() []**ModifierList {
	return []**ModifierList{
		&s.IncreasedDamageMeleePercent, &s.IncreasedDamageRangedPercent,
		&s.IncreasedDamageMagicPercent, &s.MoreDamagePercent, &s.DamageReductionPercent,
	}
}
