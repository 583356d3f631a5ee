package build

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

// ErrSheetNotFound is returned when an ID does not name a sheet on the workbench.
var ErrSheetNotFound = errors.New("sheet not found")

// Comparison is the difference other − base between two sheets.
type Comparison struct {
	Base, Other     uuid.UUID
	Stats           stats.Summary
	DamagePerHit    decimal.Decimal
	DamagePerSecond decimal.Decimal
}

// Workbench holds named builds keyed by ID. Its methods are safe for concurrent
// use: Compare and Duplicate evaluate sheets under one evaluation lock. A Sheet
// handed out by Create, Get or All is not safe to read or mutate while those
// calls run.
type Workbench struct {
	mu sync.RWMutex
	// eval serializes evaluation, which writes stat caches in place.
	eval    sync.Mutex
	factory Factory
	sheets  map[uuid.UUID]*Sheet
	order   []uuid.UUID
}

// NewWorkbench returns an empty Workbench building sheets with f.
func NewWorkbench(f Factory) *Workbench {
	return &Workbench{factory: f, sheets: make(map[uuid.UUID]*Sheet)}
}

// Create builds doc and adds the resulting sheet.
func (w *Workbench) Create(doc Document) (*Sheet, error) {
	sh, err := w.factory.Build(doc)
	if err != nil {
		return nil, err
	}
	w.Add(sh)
	return sh, nil
}

// Add stores sh under its ID, replacing any sheet with the same ID.
//
// Precondition: sh must not be nil.
func (w *Workbench) Add(sh *Sheet) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.sheets[sh.ID]; !ok {
		w.order = append(w.order, sh.ID)
	}
	w.sheets[sh.ID] = sh
}

// Get returns the sheet with id.
func (w *Workbench) Get(id uuid.UUID) (*Sheet, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	sh, ok := w.sheets[id]
	return sh, ok
}

// Remove deletes the sheet with id.
//
// Postcondition: Returns ErrSheetNotFound if id is unknown.
func (w *Workbench) Remove(id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.sheets[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrSheetNotFound)
	}
	delete(w.sheets, id)
	w.order = slices.DeleteFunc(w.order, func(x uuid.UUID) bool { return x == id })
	return nil
}

// All returns the sheets in insertion order.
func (w *Workbench) All() []*Sheet {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*Sheet, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.sheets[id])
	}
	return out
}

// Duplicate deep-copies the sheet with id under a new ID and name. The copy
// shares no modifier state with the original; value-changed hooks are not copied.
//
// Postcondition: Returns ErrSheetNotFound if id is unknown.
func (w *Workbench) Duplicate(id uuid.UUID, name string) (*Sheet, error) {
	src, ok := w.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSheetNotFound)
	}
	w.eval.Lock()
	s := src.Stats.Clone()
	w.eval.Unlock()
	cp := &Sheet{
		ID:         uuid.New(),
		Name:       name,
		Stats:      s,
		Profile:    src.Profile.Clone(s),
		Calculator: src.Calculator.WithStats(s),
	}
	w.Add(cp)
	return cp, nil
}

// Compare evaluates both sheets and returns other − base.
//
// Postcondition: Returns ErrSheetNotFound for an unknown ID, or the damage
// error of either sheet.
func (w *Workbench) Compare(base, other uuid.UUID) (Comparison, error) {
	a, ok := w.Get(base)
	if !ok {
		return Comparison{}, fmt.Errorf("%s: %w", base, ErrSheetNotFound)
	}
	b, ok := w.Get(other)
	if !ok {
		return Comparison{}, fmt.Errorf("%s: %w", other, ErrSheetNotFound)
	}
	w.eval.Lock()
	defer w.eval.Unlock()
	da, err := a.Breakdown()
	if err != nil {
		return Comparison{}, fmt.Errorf("%s: %w", a.Name, err)
	}
	db, err := b.Breakdown()
	if err != nil {
		return Comparison{}, fmt.Errorf("%s: %w", b.Name, err)
	}
	return Comparison{
		Base:            base,
		Other:           other,
		Stats:           b.Stats.Summary().Sub(a.Stats.Summary()),
		DamagePerHit:    db.DamagePerHit.Sub(da.DamagePerHit),
		DamagePerSecond: db.DamagePerSecond.Sub(da.DamagePerSecond),
	}, nil
}
