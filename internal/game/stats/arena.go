package stats

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// Arena is the flat store behind every ModifierList and Stat of one build.
// Lists and stats are addressed by index; a list records the indices of the
// stats that read it so that a mutation can mark them dirty without holding
// pointers to its owners.
//
// An Arena is not safe for concurrent use: reads mutate cache fields in place.
type Arena struct {
	lists []listNode
	stats []statNode
	rec   Recorder
}

type listNode struct {
	name       string
	policy     Policy
	mods       map[string]Modifier
	generation uint64
	dependents []int

	dirty bool
	tags  Tag
	total decimal.Decimal
}

type statNode struct {
	name                                       string
	base, unscalable, additive, multiplicative int
	defaultCap, modifiedCap                    decimal.NullDecimal
	minValue                                   decimal.Decimal

	dirty    bool
	tags     Tag
	result   decimal.Decimal
	uncapped decimal.Decimal
	onChange []func(result, uncapped decimal.Decimal)
}

// ArenaOption configures an Arena.
type ArenaOption func(*Arena)

// WithRecorder attaches r to observe evaluations.
func WithRecorder(r Recorder) ArenaOption {
	return func(a *Arena) {
		if r != nil {
			a.rec = r
		}
	}
}

// NewArena creates an empty Arena.
func NewArena(opts ...ArenaOption) *Arena {
	a := &Arena{rec: nopRecorder{}}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Recorder returns the attached Recorder.
func (a *Arena) Recorder() Recorder {
	return a.rec
}

// NewList allocates an empty list with the given policy.
//
// Postcondition: the returned list is uncached.
func (a *Arena) NewList(name string, policy Policy) *ModifierList {
	a.lists = append(a.lists, listNode{
		name:   name,
		policy: policy,
		mods:   make(map[string]Modifier),
		dirty:  true,
	})
	return &ModifierList{a: a, idx: len(a.lists) - 1}
}

// StatOption configures a Stat at creation.
type StatOption func(*statConfig)

type statConfig struct {
	defaultCap decimal.NullDecimal
	minValue   decimal.Decimal
	inverse    bool
}

// WithDefaultCap caps the stat result at c unless a modified cap overrides it.
func WithDefaultCap(c decimal.Decimal) StatOption {
	return func(sc *statConfig) { sc.defaultCap = decimal.NewNullDecimal(c) }
}

// WithMinValue floors the stat result at v.
func WithMinValue(v decimal.Decimal) StatOption {
	return func(sc *statConfig) { sc.minValue = v }
}

// WithInverseMultipliers makes the multiplicative list an InverseProduct list.
func WithInverseMultipliers() StatOption {
	return func(sc *statConfig) { sc.inverse = true }
}

// NewStat allocates a stat and its four constituent lists.
func (a *Arena) NewStat(name string, opts ...StatOption) *Stat {
	var cfg statConfig
	for _, o := range opts {
		o(&cfg)
	}
	multPolicy := Product
	if cfg.inverse {
		multPolicy = InverseProduct
	}
	base := a.NewList(name+".base", Sum)
	unscalable := a.NewList(name+".unscalable", Sum)
	additive := a.NewList(name+".additive", Sum)
	multiplicative := a.NewList(name+".multiplicative", multPolicy)

	a.stats = append(a.stats, statNode{
		name:           name,
		base:           base.idx,
		unscalable:     unscalable.idx,
		additive:       additive.idx,
		multiplicative: multiplicative.idx,
		defaultCap:     cfg.defaultCap,
		minValue:       cfg.minValue,
		dirty:          true,
	})
	idx := len(a.stats) - 1
	for _, l := range []int{base.idx, unscalable.idx, additive.idx, multiplicative.idx} {
		a.lists[l].dependents = append(a.lists[l].dependents, idx)
	}
	return a.statHandle(idx)
}

func (a *Arena) listHandle(idx int) *ModifierList {
	return &ModifierList{a: a, idx: idx}
}

func (a *Arena) statHandle(idx int) *Stat {
	n := &a.stats[idx]
	return &Stat{
		a:                         a,
		idx:                       idx,
		Base:                      a.listHandle(n.base),
		Unscalable:                a.listHandle(n.unscalable),
		AdditiveMultipliers:       a.listHandle(n.additive),
		MultiplicativeMultipliers: a.listHandle(n.multiplicative),
	}
}

// invalidateList bumps the list generation and marks it and every dependent stat dirty.
func (a *Arena) invalidateList(idx int) {
	n := &a.lists[idx]
	n.generation++
	n.dirty = true
	for _, s := range n.dependents {
		a.stats[s].dirty = true
	}
}

// Clone returns a deep copy sharing no node state with a. Every node of the
// copy starts uncached and value-changed hooks are not carried over. The copy
// reports to a's Recorder unless opts attach another one.
func (a *Arena) Clone(opts ...ArenaOption) *Arena {
	c := &Arena{
		lists: cloneNodes(a.lists, listNode.clone),
		stats: cloneNodes(a.stats, statNode.clone),
		rec:   a.rec,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func cloneNodes[T any](src []T, cp func(T) T) []T {
	out := make([]T, len(src))
	for i, n := range src {
		out[i] = cp(n)
	}
	return out
}

func (n listNode) clone() listNode {
	return listNode{
		name:       n.name,
		policy:     n.policy,
		mods:       maps.Clone(n.mods),
		generation: n.generation,
		dependents: slices.Clone(n.dependents),
		dirty:      true,
	}
}

func (n statNode) clone() statNode {
	return statNode{
		name:           n.name,
		base:           n.base,
		unscalable:     n.unscalable,
		additive:       n.additive,
		multiplicative: n.multiplicative,
		defaultCap:     n.defaultCap,
		modifiedCap:    n.modifiedCap,
		minValue:       n.minValue,
		dirty:          true,
	}
}
