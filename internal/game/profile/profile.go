package profile

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

// ErrLevelOutOfRange is returned when a level lies outside its skill's range.
var ErrLevelOutOfRange = errors.New("level out of range")

// Profile binds progression levels to a Stats build. Each Skill owns one
// modifier per target list, identified by the Skill's ID, and level changes
// rewrite those modifiers in place.
type Profile struct {
	stats  *stats.Stats
	logger *zap.Logger
	levels map[Skill]int
	songs  []string
}

// Attach registers a zero-valued modifier for every skill target and for
// melody intelligence on s.
//
// Precondition: s must not be nil and must not already carry a Profile.
// Postcondition: Returns an error wrapping stats.ErrDuplicateKey if a
// profile modifier ID is already present.
func Attach(s *stats.Stats, logger *zap.Logger) (*Profile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, t := range tables {
		for _, target := range t.targets {
			if target == TargetDungeonStars {
				continue
			}
			list, err := s.List(target)
			if err != nil {
				return nil, fmt.Errorf("attaching %s: %w", t.skill, err)
			}
			if err := list.AddValue(string(t.skill), decimal.Zero, stats.None); err != nil {
				return nil, fmt.Errorf("attaching %s: %w", t.skill, err)
			}
		}
	}
	if err := s.Intelligence.Base.AddValue(MelodyModifierID, decimal.Zero, stats.None); err != nil {
		return nil, fmt.Errorf("attaching melody: %w", err)
	}
	return &Profile{stats: s, logger: logger, levels: make(map[Skill]int)}, nil
}

// Stats returns the bound build.
func (p *Profile) Stats() *stats.Stats { return p.stats }

// Level returns the last level applied for skill, zero if never set.
func (p *Profile) Level(skill Skill) int { return p.levels[skill] }

// SetLevel applies the table values of level to skill's modifiers.
//
// Postcondition: On ErrLevelOutOfRange or an unknown skill the modifiers and
// recorded level are unchanged.
func (p *Profile) SetLevel(skill Skill, level int) error {
	lo, hi, ok := LevelRange(skill)
	if !ok {
		return fmt.Errorf("unknown skill %q", skill)
	}
	grants, ok := Grants(skill, level)
	if !ok {
		return fmt.Errorf("%s %d not in [%d, %d]: %w", skill, level, lo, hi, ErrLevelOutOfRange)
	}
	for _, g := range grants {
		if g.Target == TargetDungeonStars {
			p.stats.DungeonStars = g.Value
			continue
		}
		list, err := p.stats.List(g.Target)
		if err != nil {
			return err
		}
		if err := list.SetValue(string(skill), g.Value); err != nil {
			return err
		}
	}
	p.levels[skill] = level
	return nil
}

// Songs returns the completed melody songs last applied.
func (p *Profile) Songs() []string { return slices.Clone(p.songs) }

// SetMelodySongs sets melody intelligence to the sum over the completed songs.
//
// Postcondition: On an unknown key the error wraps ErrUnknownSong, a warning
// is logged and the melody modifier keeps its previous value.
func (p *Profile) SetMelodySongs(keys []string) error {
	v, err := MelodyIntelligence(keys)
	if err != nil {
		p.logger.Warn("ignoring melody completions", zap.Strings("songs", keys), zap.Error(err))
		return err
	}
	if err := p.stats.Intelligence.Base.SetValue(MelodyModifierID, v); err != nil {
		return err
	}
	p.songs = slices.Clone(keys)
	return nil
}

// Clone returns a Profile bound to s, which must be a clone of p's Stats.
func (p *Profile) Clone(s *stats.Stats) *Profile {
	return &Profile{
		stats:  s,
		logger: p.logger,
		levels: maps.Clone(p.levels),
		songs:  slices.Clone(p.songs),
	}
}
