// Package build loads build documents into stats.Stats instances and keeps a
// workbench of named builds for side-by-side comparison.
package build

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/simu/internal/game/damage"
	"github.com/cory-johannsen/simu/internal/game/profile"
	"github.com/cory-johannsen/simu/internal/game/stats"
)

// Document is the YAML form of one build.
type Document struct {
	Name       string `yaml:"name"`
	AttackMode string `yaml:"attack_mode"`
	// Weapon names a weapon in the catalog.
	Weapon string `yaml:"weapon"`
	// CustomWeapon defines a weapon inline; it takes precedence over Weapon.
	CustomWeapon            *damage.Weapon     `yaml:"custom_weapon"`
	ConditionalTags         []string           `yaml:"conditional_tags"`
	IntelligenceScaleFactor *decimal.Decimal   `yaml:"intelligence_scale_factor"`
	AbilityCooldown         *decimal.Decimal   `yaml:"ability_cooldown"`
	Profile                 ProfileDocument    `yaml:"profile"`
	Modifiers               []ModifierDocument `yaml:"modifiers"`
	// StatCaps overrides the default cap of the named stats.
	StatCaps map[string]decimal.Decimal `yaml:"stat_caps"`
}

// ProfileDocument carries progression levels keyed by skill ID.
type ProfileDocument struct {
	Levels map[string]int `yaml:"levels"`
	Melody []string       `yaml:"melody"`
}

// ModifierDocument is one modifier placed on a list target.
type ModifierDocument struct {
	// Target is "<Stat>.<base|unscalable|additive|multiplicative>" or a damage list name.
	Target     string           `yaml:"target"`
	ID         string           `yaml:"id"`
	Value      decimal.Decimal  `yaml:"value"`
	Tags       []string         `yaml:"tags"`
	Multiplier *decimal.Decimal `yaml:"multiplier"`
	Unit       string           `yaml:"unit"`
}

// Modifier converts d into a stats.Modifier.
func (d ModifierDocument) Modifier() (stats.Modifier, error) {
	tags, err := stats.ParseTags(d.Tags)
	if err != nil {
		return stats.Modifier{}, fmt.Errorf("modifier %q: %w", d.ID, err)
	}
	m := stats.NewTaggedModifier(d.ID, d.Value, tags).WithUnit(d.Unit)
	if d.Multiplier != nil {
		m = m.WithMultiplier(*d.Multiplier)
	}
	return m, nil
}

// Validate checks the fields that can be checked without a Stats instance.
//
// Postcondition: returns nil iff all fields are valid; every problem is
// reported, joined with "; ".
func (d Document) Validate() error {
	var errs []string
	if d.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if d.AttackMode != "" {
		if _, err := damage.ParseAttackMode(d.AttackMode); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if d.CustomWeapon != nil {
		if err := d.CustomWeapon.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if _, err := stats.ParseTags(d.ConditionalTags); err != nil {
		errs = append(errs, fmt.Sprintf("conditional_tags: %v", err))
	}
	for name, level := range d.Profile.Levels {
		skill, err := profile.ParseSkill(name)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		lo, hi, _ := profile.LevelRange(skill)
		if level < lo || level > hi {
			errs = append(errs, fmt.Sprintf("%s level %d not in [%d, %d]", skill, level, lo, hi))
		}
	}
	for i, m := range d.Modifiers {
		if m.ID == "" {
			errs = append(errs, fmt.Sprintf("modifiers[%d]: id must not be empty", i))
		}
		if m.Target == "" {
			errs = append(errs, fmt.Sprintf("modifiers[%d]: target must not be empty", i))
		}
		if _, err := stats.ParseTags(m.Tags); err != nil {
			errs = append(errs, fmt.Sprintf("modifiers[%d]: %v", i, err))
		}
	}
	if len(errs) > 0 {
		return errors.New("build validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

// Parse decodes and validates a build document.
func Parse(data []byte) (Document, error) {
	var d Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("parsing build: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// LoadFile reads and parses the build document at path.
//
// Precondition: path is a readable file.
// Postcondition: returns a validated Document or an error naming path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %q: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return Document{}, fmt.Errorf("%q: %w", path, err)
	}
	return d, nil
}
