package stats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Policy selects how a ModifierList combines its matching modifiers.
type Policy int

const (
	// Sum totals value·multiplier.
	Sum Policy = iota
	// Product totals Π(1 + value·multiplier/100) − 1.
	Product
	// InverseProduct totals 1 − Π(1 − value·multiplier/100), a combined reduction.
	InverseProduct
)

func (p Policy) String() string {
	switch p {
	case Sum:
		return "sum"
	case Product:
		return "product"
	case InverseProduct:
		return "inverse_product"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

var one = decimal.NewFromInt(1)

// ModifierList is a handle to a keyed set of Modifiers stored in an Arena.
//
// The total is cached per tag set: a cached value is reused only while the list
// is unmodified and the requested tags equal the tags it was computed for.
type ModifierList struct {
	a   *Arena
	idx int
}

func (l *ModifierList) node() *listNode {
	return &l.a.lists[l.idx]
}

// Name returns the diagnostic name of the list, e.g. "Health.base".
func (l *ModifierList) Name() string {
	return l.node().name
}

// Policy returns the aggregation policy.
func (l *ModifierList) Policy() Policy {
	return l.node().policy
}

// Generation returns a counter incremented on every mutation.
func (l *ModifierList) Generation() uint64 {
	return l.node().generation
}

// Len returns the number of modifiers held.
func (l *ModifierList) Len() int {
	return len(l.node().mods)
}

// Has reports whether id is present.
func (l *ModifierList) Has(id string) bool {
	_, ok := l.node().mods[id]
	return ok
}

// Add stores m.
//
// Precondition: m.ID must not already be present.
// Postcondition: Returns an error wrapping ErrDuplicateKey and leaves the list
// unchanged if m.ID is present; otherwise the list cache is invalidated.
func (l *ModifierList) Add(m Modifier) error {
	n := l.node()
	if _, ok := n.mods[m.ID]; ok {
		return fmt.Errorf("%s: add %q: %w", n.name, m.ID, ErrDuplicateKey)
	}
	n.mods[m.ID] = m
	l.a.invalidateList(l.idx)
	return nil
}

// AddValue stores a new Modifier built from id, value and required tags.
func (l *ModifierList) AddValue(id string, value decimal.Decimal, required Tag) error {
	return l.Add(NewTaggedModifier(id, value, required))
}

// Remove deletes the modifier stored under id.
//
// Postcondition: Returns an error wrapping ErrKeyNotFound if id is absent.
func (l *ModifierList) Remove(id string) error {
	n := l.node()
	if _, ok := n.mods[id]; !ok {
		return fmt.Errorf("%s: remove %q: %w", n.name, id, ErrKeyNotFound)
	}
	delete(n.mods, id)
	l.a.invalidateList(l.idx)
	return nil
}

// Replace overwrites the modifier stored under m.ID and always invalidates the
// cache, even when the new record is numerically identical.
//
// Postcondition: Returns an error wrapping ErrKeyNotFound if m.ID is absent.
func (l *ModifierList) Replace(m Modifier) error {
	n := l.node()
	if _, ok := n.mods[m.ID]; !ok {
		return fmt.Errorf("%s: replace %q: %w", n.name, m.ID, ErrKeyNotFound)
	}
	n.mods[m.ID] = m
	l.a.invalidateList(l.idx)
	return nil
}

// SetValue changes the value of the modifier stored under id. Writing the value
// already held is a no-op and leaves the cache intact.
//
// Postcondition: Returns an error wrapping ErrKeyNotFound if id is absent.
func (l *ModifierList) SetValue(id string, v decimal.Decimal) error {
	n := l.node()
	m, ok := n.mods[id]
	if !ok {
		return fmt.Errorf("%s: set %q: %w", n.name, id, ErrKeyNotFound)
	}
	if m.Value.Equal(v) {
		return nil
	}
	n.mods[id] = m.WithValue(v)
	l.a.invalidateList(l.idx)
	return nil
}

// Get returns the modifier stored under id.
func (l *ModifierList) Get(id string) (Modifier, error) {
	n := l.node()
	m, ok := n.mods[id]
	if !ok {
		return Modifier{}, fmt.Errorf("%s: get %q: %w", n.name, id, ErrKeyNotFound)
	}
	return m, nil
}

// Modifiers returns a snapshot of every modifier ordered by ID.
func (l *ModifierList) Modifiers() []Modifier {
	n := l.node()
	out := make([]Modifier, 0, len(n.mods))
	for _, m := range n.mods {
		out = append(out, m)
	}
	slices.SortFunc(out, func(x, y Modifier) int { return strings.Compare(x.ID, y.ID) })
	return out
}

// Total returns the aggregate of every modifier whose required tags are a
// subset of tags, computing and caching it when the cache does not hold a
// value for exactly tags.
func (l *ModifierList) Total(tags Tag) decimal.Decimal {
	n := l.node()
	if !n.dirty && n.tags.Equals(tags) {
		return n.total
	}
	n.total = aggregate(n.policy, n.mods, tags)
	n.tags = tags
	n.dirty = false
	l.a.rec.ListEvaluated(n.name, n.policy, len(n.mods))
	return n.total
}

// Factor returns the list total expressed as a multiplier:
// 1 + total/100 for Sum, 1 + total for Product and 1 − total for InverseProduct.
func (l *ModifierList) Factor(tags Tag) decimal.Decimal {
	total := l.Total(tags)
	switch l.Policy() {
	case Product:
		return one.Add(total)
	case InverseProduct:
		return one.Sub(total)
	default:
		return one.Add(percent(total))
	}
}

// aggregate evaluates policy over mods without touching any cache.
func aggregate(policy Policy, mods map[string]Modifier, tags Tag) decimal.Decimal {
	switch policy {
	case Product, InverseProduct:
		product := one
		for _, m := range mods {
			if !m.AppliesTo(tags) {
				continue
			}
			p := percent(m.Contribution())
			if policy == InverseProduct {
				product = product.Mul(one.Sub(p))
			} else {
				product = product.Mul(one.Add(p))
			}
		}
		if policy == InverseProduct {
			return one.Sub(product)
		}
		return product.Sub(one)
	default:
		sum := decimal.Zero
		for _, m := range mods {
			if m.AppliesTo(tags) {
				sum = sum.Add(m.Contribution())
			}
		}
		return sum
	}
}

// percent divides d by 100 exactly.
func percent(d decimal.Decimal) decimal.Decimal {
	return d.Shift(-2)
}
