package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

func TestTag_UnionWithout(t *testing.T) {
	tags := stats.Slayer.Union(stats.Equipment)
	assert.True(t, stats.Slayer.IsSubsetOf(tags))
	assert.True(t, stats.Equipment.IsSubsetOf(tags))
	assert.Equal(t, stats.Equipment, tags.Without(stats.Slayer))
	assert.Equal(t, stats.None, tags.Without(tags))
}

func TestTag_NoneIsSubsetOfEverything(t *testing.T) {
	assert.True(t, stats.None.IsSubsetOf(stats.None))
	assert.True(t, stats.None.IsSubsetOf(stats.Undead))
	assert.False(t, stats.Undead.IsSubsetOf(stats.None))
}

func TestTag_Equals(t *testing.T) {
	assert.True(t, stats.Undead.Union(stats.Flame).Equals(stats.Flame.Union(stats.Undead)))
	assert.False(t, stats.Undead.Equals(stats.Undead.Union(stats.Flame)))
}

func TestTag_FlagValues(t *testing.T) {
	assert.Equal(t, stats.Tag(1), stats.Base)
	assert.Equal(t, stats.Tag(1024), stats.Conditional)
	assert.Equal(t, stats.Tag(524288), stats.Venomous)
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "None", stats.None.String())
	assert.Equal(t, "Slayer, Undead", stats.Undead.Union(stats.Slayer).String())
}

func TestParseTags(t *testing.T) {
	got, err := stats.ParseTags([]string{"undead", "FirstStrike"})
	require.NoError(t, err)
	assert.Equal(t, stats.Undead.Union(stats.FirstStrike), got)

	_, err = stats.ParseTags([]string{"dragons"})
	assert.Error(t, err)
}

func TestTag_UnmarshalText(t *testing.T) {
	var tag stats.Tag
	require.NoError(t, tag.UnmarshalText([]byte("Ender, Slayer")))
	assert.Equal(t, stats.Ender.Union(stats.Slayer), tag)
}

func TestPropertyTag_SubsetOfUnion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := stats.Tag(tagGen().Draw(t, "a"))
		b := stats.Tag(tagGen().Draw(t, "b"))
		assert.True(t, a.IsSubsetOf(a.Union(b)))
		assert.True(t, a.Without(b).IsSubsetOf(a))
		assert.Equal(t, stats.None, a.Without(b)&b)
	})
}
