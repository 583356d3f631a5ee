// Package damage computes per-hit and per-second damage from a stats.Stats
// build, an attack mode and a weapon.
package damage

import (
	"fmt"
	"strings"
)

// AttackMode selects the damage formula.
type AttackMode int

const (
	Melee AttackMode = iota
	Ranged
	Magic
)

func (m AttackMode) String() string {
	switch m {
	case Melee:
		return "melee"
	case Ranged:
		return "ranged"
	case Magic:
		return "magic"
	default:
		return fmt.Sprintf("attack_mode(%d)", int(m))
	}
}

// ParseAttackMode parses "melee", "ranged" or "magic" (case-insensitive).
func ParseAttackMode(s string) (AttackMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "melee":
		return Melee, nil
	case "ranged":
		return Ranged, nil
	case "magic":
		return Magic, nil
	default:
		return 0, fmt.Errorf("unknown attack mode %q", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML and config decoding.
func (m *AttackMode) UnmarshalText(text []byte) error {
	parsed, err := ParseAttackMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FerocityMode selects how ferocity turns into hits per second.
type FerocityMode int

const (
	// FerocityMultiplicative scales swings: hits = swings·(1 + ferocity/100).
	FerocityMultiplicative FerocityMode = iota
	// FerocityExtraHits adds flat hits: hits = swings + ferocity/100.
	FerocityExtraHits
)

func (f FerocityMode) String() string {
	if f == FerocityExtraHits {
		return "extra_hits"
	}
	return "multiplicative"
}

// ParseFerocityMode parses "multiplicative" or "extra_hits".
func ParseFerocityMode(s string) (FerocityMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiplicative":
		return FerocityMultiplicative, nil
	case "extra_hits":
		return FerocityExtraHits, nil
	default:
		return 0, fmt.Errorf("unknown ferocity mode %q", s)
	}
}
