package profile_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/simu/internal/game/profile"
)

func grantValues(t *testing.T, s profile.Skill, level int) map[string]string {
	t.Helper()
	grants, ok := profile.Grants(s, level)
	require.True(t, ok)
	out := make(map[string]string, len(grants))
	for _, g := range grants {
		out[g.Target] = g.Value.String()
	}
	return out
}

func TestGrants_Skyblock(t *testing.T) {
	assert.Equal(t, map[string]string{"Health.base": "0", "Strength.base": "0"}, grantValues(t, profile.Skyblock, 0))
	assert.Equal(t, map[string]string{"Health.base": "275", "Strength.base": "9"}, grantValues(t, profile.Skyblock, 47))
	assert.Equal(t, map[string]string{"Health.base": "3000", "Strength.base": "100"}, grantValues(t, profile.Skyblock, 500))
}

func TestGrants_GatheringHealth(t *testing.T) {
	for level, want := range map[int]string{0: "0", 14: "28", 15: "31", 19: "43", 20: "47", 25: "67", 26: "72", 60: "242"} {
		assert.Equal(t, want, grantValues(t, profile.Farming, level)["Health.base"], "farming %d", level)
	}
	assert.Equal(t, "192", grantValues(t, profile.Fishing, 50)["Health.base"])
}

func TestGrants_Combat(t *testing.T) {
	g := grantValues(t, profile.Combat, 25)
	assert.Equal(t, "100", g["IncreasedDamageMeleePercent"])
	assert.Equal(t, "100", g["IncreasedDamageRangedPercent"])
	assert.Equal(t, "100", g["IncreasedDamageMagicPercent"])
	assert.Equal(t, "12.5", g["CritChancePercent.base"])

	g = grantValues(t, profile.Combat, 60)
	assert.Equal(t, "210", g["IncreasedDamageMeleePercent"])
	assert.Equal(t, "30", g["CritChancePercent.base"])
}

func TestGrants_OnePointThenTwo(t *testing.T) {
	assert.Equal(t, "14", grantValues(t, profile.Mining, 14)["Defense.base"])
	assert.Equal(t, "106", grantValues(t, profile.Mining, 60)["Defense.base"])
	assert.Equal(t, "86", grantValues(t, profile.Foraging, 50)["Strength.base"])
	assert.Equal(t, "86", grantValues(t, profile.Alchemy, 50)["Intelligence.base"])

	g := grantValues(t, profile.Enchanting, 21)
	assert.Equal(t, "28", g["Intelligence.base"])
	assert.Equal(t, "10.5", g["AbilityDamagePercent.base"])
}

func TestGrants_CarpentryAndTaming(t *testing.T) {
	assert.Equal(t, "49", grantValues(t, profile.Carpentry, 49)["Health.base"])
	assert.Equal(t, "49", grantValues(t, profile.Carpentry, 50)["Health.base"])
	assert.Equal(t, "30", grantValues(t, profile.Taming, 30)["PetLuck.base"])
}

func TestGrants_DungeonStars(t *testing.T) {
	for level, want := range map[int]string{0: "0", 5: "20", 10: "45", 15: "75", 20: "110", 25: "150", 30: "195", 35: "245", 40: "305", 45: "375", 46: "391", 47: "408", 48: "426", 49: "445", 50: "465"} {
		assert.Equal(t, want, grantValues(t, profile.Dungeoneering, level)[profile.TargetDungeonStars], "level %d", level)
	}
	assert.Equal(t, "100", grantValues(t, profile.Dungeoneering, 50)["Health.base"])
}

func TestGrants_Slayers(t *testing.T) {
	assert.Equal(t, "34", grantValues(t, profile.ZombieSlayer, 9)["Health.base"])

	spider := grantValues(t, profile.SpiderSlayer, 7)
	assert.Equal(t, "1", spider["CritChancePercent.base"])
	assert.Equal(t, "8", spider["CritDamagePercent.base"])

	wolf := grantValues(t, profile.WolfSlayer, 9)
	assert.Equal(t, "3", wolf["Speed.base"])
	assert.Equal(t, "12", wolf["Health.base"])
	assert.Equal(t, "3", wolf["CritDamagePercent.base"])

	ender := grantValues(t, profile.EndermanSlayer, 5)
	assert.Equal(t, "6", ender["Health.base"])
	assert.Equal(t, "3", ender["Intelligence.base"])

	blaze := grantValues(t, profile.BlazeSlayer, 8)
	assert.Equal(t, "18", blaze["Health.base"])
	assert.Equal(t, "3", blaze["Strength.base"])
	assert.Equal(t, "3", blaze["TrueDefense.base"])
}

func TestGrants_OutOfRange(t *testing.T) {
	_, ok := profile.Grants(profile.Farming, 61)
	assert.False(t, ok)
	_, ok = profile.Grants(profile.ZombieSlayer, -1)
	assert.False(t, ok)
	_, ok = profile.Grants(profile.Skill("Runecrafting"), 1)
	assert.False(t, ok)
}

func TestParseSkill(t *testing.T) {
	s, err := profile.ParseSkill("combatlevel")
	require.NoError(t, err)
	assert.Equal(t, profile.Combat, s)
	_, err = profile.ParseSkill("Runecrafting")
	assert.Error(t, err)
	assert.Len(t, profile.Skills(), 16)
}

func TestPropertyGrantsAreNonDecreasingInLevel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		skill := rapid.SampledFrom(profile.Skills()).Draw(rt, "skill")
		lo, hi, ok := profile.LevelRange(skill)
		require.True(rt, ok)
		level := rapid.IntRange(lo, hi-1).Draw(rt, "level")

		cur, ok := profile.Grants(skill, level)
		require.True(rt, ok)
		next, ok := profile.Grants(skill, level+1)
		require.True(rt, ok)
		require.Len(rt, next, len(cur))
		for i := range cur {
			assert.Equal(rt, cur[i].Target, next[i].Target)
			assert.True(rt, next[i].Value.GreaterThanOrEqual(cur[i].Value), "%s %s at %d", skill, cur[i].Target, level)
			assert.False(rt, cur[i].Value.LessThan(decimal.Zero))
		}
	})
}
