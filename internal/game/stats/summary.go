package stats

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Summary is a flat attribute name to value record of final totals. It is an
// export format, not a live calculation model.
type Summary map[string]decimal.Decimal

// Summary evaluates every attribute, damage list and mana under the active tags.
func (s *Stats) Summary() Summary {
	out := make(Summary, 22)
	for _, st := range s.AllStats() {
		out[st.Name()] = s.Total(st)
	}
	for _, l := range s.AllLists() {
		out[l.Name()] = s.ListTotal(l)
	}
	out[NameMana] = s.Mana()
	return out
}

// MergeWith returns a new Summary holding the per-key sum of s and o.
// Keys present in only one side are carried over unchanged.
func (s Summary) MergeWith(o Summary) Summary {
	out := maps.Clone(s)
	if out == nil {
		out = make(Summary, len(o))
	}
	for k, v := range o {
		out[k] = out[k].Add(v)
	}
	return out
}

// Sub returns a new Summary holding s[k] − o[k] for every key of either side.
func (s Summary) Sub(o Summary) Summary {
	neg := make(Summary, len(o))
	for k, v := range o {
		neg[k] = v.Neg()
	}
	return s.MergeWith(neg)
}

// Keys returns the attribute names in sorted order.
func (s Summary) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
