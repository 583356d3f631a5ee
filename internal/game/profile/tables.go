// Package profile turns account progression (skill levels, slayer levels and
// melody completions) into modifiers on a stats.Stats build.
package profile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

// Skill identifies one leveled progression track. Its value is also the ID of
// every modifier the track contributes.
type Skill string

const (
	Skyblock       Skill = "SkyblockLevel"
	Farming        Skill = "FarmingLevel"
	Mining         Skill = "MiningLevel"
	Combat         Skill = "CombatLevel"
	Foraging       Skill = "ForagingLevel"
	Fishing        Skill = "FishingLevel"
	Enchanting     Skill = "EnchantingLevel"
	Alchemy        Skill = "AlchemyLevel"
	Carpentry      Skill = "CarpentryLevel"
	Taming         Skill = "TamingLevel"
	Dungeoneering  Skill = "DungeoneeringLevel"
	ZombieSlayer   Skill = "ZombieSlayer"
	SpiderSlayer   Skill = "SpiderSlayer"
	WolfSlayer     Skill = "WolfSlayer"
	EndermanSlayer Skill = "EndermanSlayer"
	BlazeSlayer    Skill = "BlazeSlayer"
)

// TargetDungeonStars addresses the Stats.DungeonStars scalar instead of a list.
const TargetDungeonStars = "DungeonStars"

// Grant is one value a level contributes to a modifier list.
type Grant struct {
	// Target is a stats.Stats list target such as "Health.base".
	Target string
	Value  decimal.Decimal
}

type table struct {
	skill    Skill
	min, max int
	targets  []string
	values   func(level int) []decimal.Decimal
}

func base(name string) string { return name + ".base" }

var tables = []table{
	{
		skill: Skyblock, min: 0, max: 500,
		targets: []string{base(stats.NameHealth), base(stats.NameStrength)},
		values: func(l int) []decimal.Decimal {
			return ints(int64(l*5 + (l/10)*10), int64(l/5))
		},
	},
	{
		skill: Farming, min: 0, max: 60,
		targets: []string{base(stats.NameHealth)},
		values:  func(l int) []decimal.Decimal { return ints(gatheringHealth(l)) },
	},
	{
		skill: Mining, min: 0, max: 60,
		targets: []string{base(stats.NameDefense)},
		values:  func(l int) []decimal.Decimal { return ints(doubleAfter14(l)) },
	},
	{
		skill: Combat, min: 0, max: 60,
		targets: []string{
			stats.NameIncreasedDamageMelee,
			stats.NameIncreasedDamageRanged,
			stats.NameIncreasedDamageMagic,
			base(stats.NameCritChancePercent),
		},
		values: func(l int) []decimal.Decimal {
			bonus := int64(l * 4)
			if l > 50 {
				bonus = 200 + int64(l-50)
			}
			return append(ints(bonus, bonus, bonus), half(l))
		},
	},
	{
		skill: Foraging, min: 0, max: 50,
		targets: []string{base(stats.NameStrength)},
		values:  func(l int) []decimal.Decimal { return ints(doubleAfter14(l)) },
	},
	{
		skill: Fishing, min: 0, max: 50,
		targets: []string{base(stats.NameHealth)},
		values:  func(l int) []decimal.Decimal { return ints(gatheringHealth(l)) },
	},
	{
		skill: Enchanting, min: 0, max: 60,
		targets: []string{base(stats.NameIntelligence), base(stats.NameAbilityDamage)},
		values: func(l int) []decimal.Decimal {
			return []decimal.Decimal{decimal.NewFromInt(doubleAfter14(l)), half(l)}
		},
	},
	{
		skill: Alchemy, min: 0, max: 50,
		targets: []string{base(stats.NameIntelligence)},
		values:  func(l int) []decimal.Decimal { return ints(doubleAfter14(l)) },
	},
	{
		skill: Carpentry, min: 0, max: 50,
		targets: []string{base(stats.NameHealth)},
		values:  func(l int) []decimal.Decimal { return ints(int64(min(l, 49))) },
	},
	{
		skill: Taming, min: 0, max: 50,
		targets: []string{base(stats.NamePetLuck)},
		values:  func(l int) []decimal.Decimal { return ints(int64(l)) },
	},
	{
		skill: Dungeoneering, min: 0, max: 50,
		targets: []string{base(stats.NameHealth), TargetDungeonStars},
		values:  func(l int) []decimal.Decimal { return ints(int64(l*2), dungeonStars(l)) },
	},
	{
		skill: ZombieSlayer, min: 0, max: 9,
		targets: []string{base(stats.NameHealth)},
		values: func(l int) []decimal.Decimal {
			return ints(lookup(l, 0, 2, 4, 7, 10, 14, 18, 23, 28, 34))
		},
	},
	{
		skill: SpiderSlayer, min: 0, max: 9,
		targets: []string{base(stats.NameCritChancePercent), base(stats.NameCritDamagePercent)},
		values: func(l int) []decimal.Decimal {
			return ints(
				lookup(l, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1),
				lookup(l, 0, 1, 2, 3, 4, 6, 8, 8, 11, 14),
			)
		},
	},
	{
		skill: WolfSlayer, min: 0, max: 9,
		targets: []string{base(stats.NameSpeed), base(stats.NameHealth), base(stats.NameCritDamagePercent)},
		values: func(l int) []decimal.Decimal {
			return ints(
				lookup(l, 0, 1, 1, 2, 2, 2, 2, 2, 2, 3),
				lookup(l, 0, 0, 2, 2, 4, 4, 7, 7, 7, 12),
				lookup(l, 0, 0, 0, 0, 0, 1, 1, 3, 3, 3),
			)
		},
	},
	{
		skill: EndermanSlayer, min: 0, max: 9,
		targets: []string{base(stats.NameHealth), base(stats.NameIntelligence)},
		values: func(l int) []decimal.Decimal {
			return ints(
				lookup(l, 0, 1, 1, 3, 3, 6, 6, 10, 10, 15),
				lookup(l, 0, 0, 1, 1, 3, 3, 6, 6, 10, 10),
			)
		},
	},
	{
		skill: BlazeSlayer, min: 0, max: 9,
		targets: []string{base(stats.NameHealth), base(stats.NameStrength), base(stats.NameTrueDefense)},
		values: func(l int) []decimal.Decimal {
			return ints(
				lookup(l, 0, 3, 3, 7, 7, 12, 12, 18, 18, 25),
				lookup(l, 0, 0, 1, 1, 1, 1, 3, 3, 3, 3),
				lookup(l, 0, 0, 0, 0, 1, 1, 1, 1, 3, 3),
			)
		},
	},
}

var tableBySkill = func() map[Skill]*table {
	m := make(map[Skill]*table, len(tables))
	for i := range tables {
		m[tables[i].skill] = &tables[i]
	}
	return m
}()

// Skills returns every Skill in table order.
func Skills() []Skill {
	out := make([]Skill, len(tables))
	for i, t := range tables {
		out[i] = t.skill
	}
	return out
}

// ParseSkill resolves a Skill by its modifier ID, case-insensitively.
func ParseSkill(name string) (Skill, error) {
	for _, t := range tables {
		if strings.EqualFold(string(t.skill), name) {
			return t.skill, nil
		}
	}
	return "", fmt.Errorf("unknown skill %q", name)
}

// LevelRange returns the inclusive level bounds of s.
func LevelRange(s Skill) (lo, hi int, ok bool) {
	t, ok := tableBySkill[s]
	if !ok {
		return 0, 0, false
	}
	return t.min, t.max, true
}

// Grants returns the values level contributes for s.
//
// Postcondition: ok is false when s is unknown or level is outside its range.
func Grants(s Skill, level int) ([]Grant, bool) {
	t, ok := tableBySkill[s]
	if !ok || level < t.min || level > t.max {
		return nil, false
	}
	values := t.values(level)
	out := make([]Grant, len(t.targets))
	for i, target := range t.targets {
		out[i] = Grant{Target: target, Value: values[i]}
	}
	return out, true
}

func ints(vs ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vs))
	for i, v := range vs {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

// half returns l/2 exactly.
func half(l int) decimal.Decimal {
	return decimal.New(int64(l)*5, -1)
}

// gatheringHealth is shared by farming and fishing.
func gatheringHealth(l int) int64 {
	switch {
	case l < 15:
		return int64(l * 2)
	case l < 20:
		return int64(28 + (l-14)*3)
	case l < 26:
		return int64(43 + (l-19)*4)
	default:
		return int64(67 + (l-25)*5)
	}
}

// doubleAfter14 grants one point per level up to 14 and two per level after.
func doubleAfter14(l int) int64 {
	if l < 15 {
		return int64(l)
	}
	return int64(14 + (l-14)*2)
}

func dungeonStars(l int) int64 {
	steps := []struct{ below, from, start, per int }{
		{6, 0, 0, 4},
		{11, 5, 20, 5},
		{16, 10, 45, 6},
		{21, 15, 75, 7},
		{26, 20, 110, 8},
		{31, 25, 150, 9},
		{36, 30, 195, 10},
		{41, 35, 245, 12},
		{46, 40, 305, 14},
	}
	for _, s := range steps {
		if l < s.below {
			return int64(s.start + (l-s.from)*s.per)
		}
	}
	return lookup(l-46, 391, 408, 426, 445, 465)
}

// lookup returns values[i], or the last value when i is past the end.
func lookup(i int, values ...int64) int64 {
	if i >= len(values) {
		return values[len(values)-1]
	}
	return values[i]
}
