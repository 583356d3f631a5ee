package stats_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

func TestModifier_DefaultMultiplier(t *testing.T) {
	m := stats.Modifier{ID: "Raw", Value: dec("7")}
	assertDecimal(t, "1", m.Multiplier())
	assertDecimal(t, "7", m.Contribution())

	assertDecimal(t, "1", stats.NewModifier("Ring", dec("4")).Multiplier())
	assertDecimal(t, "1", stats.NewTaggedModifier("Ring", dec("4"), stats.Undead).Multiplier())
}

func TestModifier_ExplicitZeroMultiplier(t *testing.T) {
	m := stats.NewModifier("Muted", dec("10")).WithMultiplier(decimal.Zero)
	assertDecimal(t, "0", m.Multiplier())
	assertDecimal(t, "0", m.Contribution())
}

func TestModifier_Contribution_AppliesLocalMultiplier(t *testing.T) {
	m := stats.NewModifier("Ring", dec("4")).WithMultiplier(dec("2.5"))
	assertDecimal(t, "10", m.Contribution())
}

func TestModifier_WithValue_LeavesOriginal(t *testing.T) {
	m := stats.NewModifier("Ring", dec("4"))
	n := m.WithValue(dec("9"))
	assertDecimal(t, "4", m.Value)
	assertDecimal(t, "9", n.Value)
	assert.Equal(t, m.ID, n.ID)
}

func TestModifier_AppliesTo(t *testing.T) {
	m := stats.NewTaggedModifier("Revenant", dec("10"), stats.Slayer)
	assert.True(t, m.AppliesTo(stats.Slayer.Union(stats.Equipment)))
	assert.False(t, m.AppliesTo(stats.Equipment))
	assert.False(t, m.AppliesTo(stats.None))
}

func TestModifier_String(t *testing.T) {
	m := stats.NewTaggedModifier("Smite", decimal.NewFromInt(35), stats.Undead).WithUnit("%")
	assert.Equal(t, "Smite: 35.00 % (Undead)", m.String())
	assert.Equal(t, "Undead", m.RequiredTagsString())
	assert.Equal(t, "", stats.NewModifier("x", dec("1")).RequiredTagsString())
}
