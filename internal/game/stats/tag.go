// Package stats implements the modifier aggregation model: tag-gated modifiers,
// keyed modifier lists with sum/product policies, capped compound stats and the
// Stats aggregate root that owns them.
package stats

import (
	"fmt"
	"strings"
)

// Tag is a set of category flags. A single named constant is a one-element set;
// combinations are built with Union.
type Tag uint32

const (
	None Tag = 0
	Base Tag = 1 << (iota - 1)
	Armor
	Weapon
	Equipment
	Reforge
	Merged
	Skill
	Effect
	Slayer
	Pet
	Conditional
	Undead
	Cubism
	Arachnids
	Ender
	Blazes
	FirstStrike
	TripleStrike
	Flame
	Venomous
)

var tagNames = []struct {
	tag  Tag
	name string
}{
	{Base, "Base"},
	{Armor, "Armor"},
	{Weapon, "Weapon"},
	{Equipment, "Equipment"},
	{Reforge, "Reforge"},
	{Merged, "Merged"},
	{Skill, "Skill"},
	{Effect, "Effect"},
	{Slayer, "Slayer"},
	{Pet, "Pet"},
	{Conditional, "Conditional"},
	{Undead, "Undead"},
	{Cubism, "Cubism"},
	{Arachnids, "Arachnids"},
	{Ender, "Ender"},
	{Blazes, "Blazes"},
	{FirstStrike, "FirstStrike"},
	{TripleStrike, "TripleStrike"},
	{Flame, "Flame"},
	{Venomous, "Venomous"},
}

// Union returns the set containing every flag of t and o.
func (t Tag) Union(o Tag) Tag {
	return t | o
}

// Without returns t with every flag of o cleared.
func (t Tag) Without(o Tag) Tag {
	return t &^ o
}

// IsSubsetOf reports whether every flag set in t is also set in o.
// None is a subset of every tag set.
func (t Tag) IsSubsetOf(o Tag) bool {
	return t&o == t
}

// Equals reports whether t and o hold exactly the same flags.
func (t Tag) Equals(o Tag) bool {
	return t == o
}

// String returns the flag names joined by ", ", or "None" for the empty set.
func (t Tag) String() string {
	if t == None {
		return "None"
	}
	var parts []string
	for _, tn := range tagNames {
		if tn.tag.IsSubsetOf(t) {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, ", ")
}

// ParseTag returns the single flag named name (case-insensitive).
func ParseTag(name string) (Tag, error) {
	if strings.EqualFold(name, "none") {
		return None, nil
	}
	for _, tn := range tagNames {
		if strings.EqualFold(tn.name, name) {
			return tn.tag, nil
		}
	}
	return None, fmt.Errorf("unknown tag %q", name)
}

// ParseTags returns the union of every named flag.
//
// Postcondition: Returns the first unknown name as an error.
func ParseTags(names []string) (Tag, error) {
	out := None
	for _, n := range names {
		t, err := ParseTag(n)
		if err != nil {
			return None, err
		}
		out = out.Union(t)
	}
	return out, nil
}

// UnmarshalText parses a comma separated list of flag names.
func (t *Tag) UnmarshalText(text []byte) error {
	var names []string
	for _, n := range strings.Split(string(text), ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	parsed, err := ParseTags(names)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
