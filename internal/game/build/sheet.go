package build

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/game/damage"
	"github.com/cory-johannsen/simu/internal/game/profile"
	"github.com/cory-johannsen/simu/internal/game/stats"
)

// Sheet is one evaluated build: its Stats, the Profile bound to them and a
// Calculator over both.
type Sheet struct {
	ID         uuid.UUID
	Name       string
	Stats      *stats.Stats
	Profile    *profile.Profile
	Calculator *damage.Calculator
}

// Factory turns Documents into Sheets.
type Factory struct {
	// Catalog resolves Document.Weapon; nil means only inline weapons are accepted.
	Catalog *damage.Catalog
	Logger  *zap.Logger
	// Recorder observes every evaluation of the built Stats; nil disables it.
	Recorder stats.Recorder
	// CalculatorOptions are applied before the document's own mode and weapon.
	CalculatorOptions []damage.Option
}

// Build creates a fresh Stats with base stats and a Profile, applies doc and
// wraps the result in a Sheet with a new ID.
//
// Precondition: doc has passed Validate.
// Postcondition: Returns a non-nil Sheet or the first error encountered.
func (f Factory) Build(doc Document) (*Sheet, error) {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var opts []stats.ArenaOption
	if f.Recorder != nil {
		opts = append(opts, stats.WithRecorder(f.Recorder))
	}
	s := stats.New(opts...)
	if err := s.AddBaseStats(); err != nil {
		return nil, err
	}
	p, err := profile.Attach(s, logger)
	if err != nil {
		return nil, err
	}
	if err := Apply(doc, s, p); err != nil {
		return nil, fmt.Errorf("build %q: %w", doc.Name, err)
	}

	calcOpts := append([]damage.Option{damage.WithLogger(logger)}, f.CalculatorOptions...)
	if doc.AttackMode != "" {
		mode, err := damage.ParseAttackMode(doc.AttackMode)
		if err != nil {
			return nil, err
		}
		calcOpts = append(calcOpts, damage.WithAttackMode(mode))
	}
	w, ok, err := f.weapon(doc)
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", doc.Name, err)
	}
	if ok {
		calcOpts = append(calcOpts, damage.WithWeapon(w))
	}

	logger.Debug("build loaded",
		zap.String("build", doc.Name),
		zap.Int("modifiers", len(doc.Modifiers)),
		zap.Stringer("tags", s.ConditionalTags()),
	)
	return &Sheet{
		ID:         uuid.New(),
		Name:       doc.Name,
		Stats:      s,
		Profile:    p,
		Calculator: damage.NewCalculator(s, calcOpts...),
	}, nil
}

func (f Factory) weapon(doc Document) (damage.Weapon, bool, error) {
	if doc.CustomWeapon != nil {
		return *doc.CustomWeapon, true, nil
	}
	if doc.Weapon == "" {
		return damage.Weapon{}, false, nil
	}
	if f.Catalog == nil {
		return damage.Weapon{}, false, fmt.Errorf("weapon %q: no weapon catalog loaded", doc.Weapon)
	}
	w, ok := f.Catalog.Get(doc.Weapon)
	if !ok {
		return damage.Weapon{}, false, fmt.Errorf("unknown weapon %q", doc.Weapon)
	}
	return w, true, nil
}

// Apply writes doc's tags, scalars, caps, profile levels and modifiers into s
// through p.
//
// Precondition: p must be attached to s.
// Postcondition: Returns an error wrapping stats.ErrDuplicateKey when a
// document modifier collides with an existing ID on its target list.
func Apply(doc Document, s *stats.Stats, p *profile.Profile) error {
	tags, err := stats.ParseTags(doc.ConditionalTags)
	if err != nil {
		return err
	}
	s.AddConditionalTag(tags)
	if doc.IntelligenceScaleFactor != nil {
		s.IntelligenceScaleFactor = *doc.IntelligenceScaleFactor
	}
	if doc.AbilityCooldown != nil {
		s.AbilityCooldown = *doc.AbilityCooldown
	}
	for name, limit := range doc.StatCaps {
		st, ok := s.Stat(name)
		if !ok {
			return fmt.Errorf("stat_caps: unknown stat %q", name)
		}
		st.SetModifiedCap(decimal.NewNullDecimal(limit))
	}
	for name, level := range doc.Profile.Levels {
		skill, err := profile.ParseSkill(name)
		if err != nil {
			return err
		}
		if err := p.SetLevel(skill, level); err != nil {
			return err
		}
	}
	if len(doc.Profile.Melody) > 0 {
		if err := p.SetMelodySongs(doc.Profile.Melody); err != nil {
			return err
		}
	}
	for _, md := range doc.Modifiers {
		list, err := s.List(md.Target)
		if err != nil {
			return err
		}
		m, err := md.Modifier()
		if err != nil {
			return err
		}
		if err := list.Add(m); err != nil {
			return err
		}
	}
	return nil
}

// Breakdown evaluates the sheet's damage under its current state.
func (sh *Sheet) Breakdown() (damage.Breakdown, error) {
	return sh.Calculator.CalculateDamageBreakdown()
}
