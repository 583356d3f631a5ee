package damage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Weapon is the weapon data the calculator reads.
type Weapon struct {
	Name       string          `yaml:"name"`
	Mode       AttackMode      `yaml:"mode"`
	Damage     decimal.Decimal `yaml:"damage"`
	IsShortbow bool            `yaml:"shortbow"`
}

// Fist is the weapon used when none is equipped.
func Fist() Weapon {
	return Weapon{Name: "Fist", Mode: Melee, Damage: decimal.NewFromInt(5)}
}

// Validate checks that the Weapon satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w Weapon) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Damage.IsNegative() {
		errs = append(errs, fmt.Errorf("damage must not be negative, got %s", w.Damage))
	}
	if w.IsShortbow && w.Mode != Ranged {
		errs = append(errs, errors.New("shortbow must use ranged mode"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Catalog holds weapons keyed by case-folded name.
type Catalog struct {
	weapons map[string]Weapon
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{weapons: make(map[string]Weapon)}
}

// Register adds w, overwriting any weapon with the same name.
func (c *Catalog) Register(w Weapon) {
	c.weapons[strings.ToLower(w.Name)] = w
}

// Get returns the weapon named name, or (Weapon{}, false) if not found.
func (c *Catalog) Get(name string) (Weapon, bool) {
	w, ok := c.weapons[strings.ToLower(name)]
	return w, ok
}

// All returns a snapshot of every weapon ordered by name.
func (c *Catalog) All() []Weapon {
	out := make([]Weapon, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b Weapon) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// LoadWeapons reads every *.yaml file in dir, parses each as a Weapon,
// validates it, and returns a populated Catalog.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns a non-nil Catalog or the first encountered error.
func LoadWeapons(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading weapon dir %q: %w", dir, err)
	}
	cat := NewCatalog()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var w Weapon
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&w); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("invalid weapon in %q: %w", path, err)
		}
		cat.Register(w)
	}
	return cat, nil
}
