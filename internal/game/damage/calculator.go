package damage

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

var (
	// ErrUnsupportedMode is returned for an attack mode without a formula.
	ErrUnsupportedMode = errors.New("unsupported attack mode")
	// ErrZeroCooldown is returned when magic damage is evaluated with a
	// non-positive ability cooldown.
	ErrZeroCooldown = errors.New("ability cooldown must be positive")
)

// UnsupportedDamage is the per-hit sentinel for an attack mode without a formula.
var UnsupportedDamage = decimal.NewFromInt(-1)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)

	// DefaultSwingsPerSecond is the melee swing rate before attack speed.
	DefaultSwingsPerSecond = decimal.NewFromInt(2)
	// DefaultShotsPerSecond is the bow shot rate before attack speed.
	DefaultShotsPerSecond = decimal.NewFromInt(2)
	// DefaultShortbowShotsPerSecond is the shortbow shot rate before attack speed.
	DefaultShortbowShotsPerSecond = decimal.RequireFromString("3.33")
)

// Breakdown is the result of one damage evaluation.
type Breakdown struct {
	Mode AttackMode
	// DamagePerHit is the crit-weighted average damage of one hit or cast.
	DamagePerHit decimal.Decimal
	// HitsPerSecond includes ferocity for melee and ranged; it is casts per second for magic.
	HitsPerSecond decimal.Decimal
	// DamagePerSecond is DamagePerHit·HitsPerSecond.
	DamagePerSecond decimal.Decimal
	// AdditionalHitsChance is ferocity/100; zero for magic.
	AdditionalHitsChance decimal.Decimal
}

// Calculator evaluates damage for one build. It reads but never mutates the
// modifiers of its Stats; evaluation does refresh their caches.
type Calculator struct {
	stats    *stats.Stats
	mode     AttackMode
	weapon   Weapon
	ferocity FerocityMode
	shots    decimal.Decimal
	shortbow decimal.Decimal
	logger   *zap.Logger

	breakdown Breakdown
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithAttackMode sets the initial attack mode.
func WithAttackMode(m AttackMode) Option {
	return func(c *Calculator) { c.mode = m }
}

// WithWeapon sets the initial weapon.
func WithWeapon(w Weapon) Option {
	return func(c *Calculator) { c.weapon = w }
}

// WithFerocityMode selects how ferocity is folded into hits per second.
func WithFerocityMode(f FerocityMode) Option {
	return func(c *Calculator) { c.ferocity = f }
}

// WithShotRates overrides the base shot rates of bows and shortbows.
func WithShotRates(bow, shortbow decimal.Decimal) Option {
	return func(c *Calculator) {
		c.shots = bow
		c.shortbow = shortbow
	}
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator creates a Calculator over s. Defaults are melee with Fist.
//
// Precondition: s must not be nil.
func NewCalculator(s *stats.Stats, opts ...Option) *Calculator {
	c := &Calculator{
		stats:    s,
		mode:     Melee,
		weapon:   Fist(),
		shots:    DefaultShotsPerSecond,
		shortbow: DefaultShortbowShotsPerSecond,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Stats returns the evaluated build.
func (c *Calculator) Stats() *stats.Stats { return c.stats }

// AttackMode returns the current attack mode.
func (c *Calculator) AttackMode() AttackMode { return c.mode }

// SetAttackMode changes the attack mode.
func (c *Calculator) SetAttackMode(m AttackMode) { c.mode = m }

// Weapon returns the current weapon.
func (c *Calculator) Weapon() Weapon { return c.weapon }

// SetWeapon changes the weapon.
func (c *Calculator) SetWeapon(w Weapon) { c.weapon = w }

// FerocityMode returns the configured ferocity model.
func (c *Calculator) FerocityMode() FerocityMode { return c.ferocity }

// Breakdown returns the breakdown stored by the last RefreshDamageBreakdown.
func (c *Calculator) Breakdown() Breakdown { return c.breakdown }

// WithStats returns a copy of c evaluating s instead, keeping mode, weapon and rates.
func (c *Calculator) WithStats(s *stats.Stats) *Calculator {
	cp := *c
	cp.stats = s
	cp.breakdown = Breakdown{}
	return &cp
}

// recorderFlusher is implemented by recorders that aggregate evaluation counts.
type recorderFlusher interface {
	Flush()
}

// RecalculateAllStats brings every Stat of the build up to date under the
// active tags.
func (c *Calculator) RecalculateAllStats() {
	c.stats.RecalculateAll()
	if f, ok := c.stats.Recorder().(recorderFlusher); ok {
		f.Flush()
	}
}

// CalculateAverageDamagePerHit returns the crit-weighted damage of one hit for
// the current mode, or UnsupportedDamage for a mode without a formula.
func (c *Calculator) CalculateAverageDamagePerHit() decimal.Decimal {
	s := c.stats
	switch c.mode {
	case Melee, Ranged:
		increased := s.IncreasedDamageMeleePercent
		if c.mode == Ranged {
			increased = s.IncreasedDamageRangedPercent
		}
		strength := one.Add(pct(s.Total(s.Strength)))
		critChance := decimal.Min(pct(s.Total(s.CritChancePercent)), one)
		critDamage := one.Add(pct(s.Total(s.CritDamagePercent)))
		crit := critDamage.Mul(critChance).Add(one.Sub(critChance))
		return c.weapon.Damage.
			Mul(strength).
			Mul(crit).
			Mul(one.Add(pct(s.ListTotal(increased)))).
			Mul(one.Add(s.ListTotal(s.MoreDamagePercent)))
	case Magic:
		intelligence := pct(s.Total(s.Intelligence)).Mul(s.IntelligenceScaleFactor)
		return c.weapon.Damage.
			Mul(intelligence).
			Mul(one.Add(pct(s.Total(s.AbilityDamagePercent)))).
			Mul(one.Add(pct(s.ListTotal(s.IncreasedDamageMagicPercent)))).
			Mul(one.Add(s.ListTotal(s.MoreDamagePercent)))
	default:
		c.logger.Warn("no damage formula for attack mode", zap.Stringer("mode", c.mode))
		return UnsupportedDamage
	}
}

// CalculateDamageBreakdown evaluates per-hit damage, hit rate and DPS.
//
// Postcondition: Returns ErrUnsupportedMode for a mode without a formula and
// ErrZeroCooldown for magic with AbilityCooldown <= 0.
func (c *Calculator) CalculateDamageBreakdown() (Breakdown, error) {
	var b Breakdown
	switch c.mode {
	case Melee:
		b = c.attackBreakdown(DefaultSwingsPerSecond)
	case Ranged:
		rate := c.shots
		if c.weapon.IsShortbow {
			rate = c.shortbow
		}
		b = c.attackBreakdown(rate)
	case Magic:
		cooldown := c.stats.AbilityCooldown
		if !cooldown.IsPositive() {
			return Breakdown{}, fmt.Errorf("magic damage with cooldown %s: %w", cooldown, ErrZeroCooldown)
		}
		perHit := c.CalculateAverageDamagePerHit()
		casts := one.Div(cooldown)
		b = Breakdown{
			Mode:            Magic,
			DamagePerHit:    perHit,
			HitsPerSecond:   casts,
			DamagePerSecond: perHit.Mul(casts),
		}
	default:
		return Breakdown{}, fmt.Errorf("attack mode %s: %w", c.mode, ErrUnsupportedMode)
	}
	c.logger.Debug("damage breakdown",
		zap.Stringer("mode", b.Mode),
		zap.Stringer("damage_per_hit", b.DamagePerHit),
		zap.Stringer("hits_per_second", b.HitsPerSecond),
		zap.Stringer("dps", b.DamagePerSecond),
	)
	return b, nil
}

// attackBreakdown computes melee and ranged breakdowns from the base rate
// before attack speed.
func (c *Calculator) attackBreakdown(baseRate decimal.Decimal) Breakdown {
	s := c.stats
	perHit := c.CalculateAverageDamagePerHit()
	swings := baseRate.Mul(one.Add(pct(s.Total(s.AttackSpeedPercent))))
	extra := pct(s.Total(s.Ferocity))

	var hits decimal.Decimal
	if c.ferocity == FerocityExtraHits {
		hits = swings.Add(extra)
	} else {
		hits = swings.Mul(one.Add(extra))
	}
	return Breakdown{
		Mode:                 c.mode,
		DamagePerHit:         perHit,
		HitsPerSecond:        hits,
		DamagePerSecond:      perHit.Mul(hits),
		AdditionalHitsChance: extra,
	}
}

// RefreshDamageBreakdown recomputes and stores the breakdown.
func (c *Calculator) RefreshDamageBreakdown() error {
	b, err := c.CalculateDamageBreakdown()
	if err != nil {
		return err
	}
	c.breakdown = b
	return nil
}

func pct(d decimal.Decimal) decimal.Decimal {
	return d.Div(hundred)
}
