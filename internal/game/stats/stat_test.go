package stats_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

func TestStat_BaseOnly(t *testing.T) {
	s := stats.NewArena().NewStat("Test")
	require.NoError(t, s.Base.AddValue("Base", dec("5"), stats.None))
	assertDecimal(t, "5", s.CalculateTotal(stats.None))
}

func TestStat_Formula(t *testing.T) {
	s := stats.NewArena().NewStat("Strength")
	require.NoError(t, s.Base.AddValue("Base", dec("100"), stats.None))
	require.NoError(t, s.AdditiveMultipliers.AddValue("A", dec("10"), stats.None))
	require.NoError(t, s.AdditiveMultipliers.AddValue("B", dec("15"), stats.None))
	require.NoError(t, s.MultiplicativeMultipliers.AddValue("M", dec("20"), stats.None))
	require.NoError(t, s.Unscalable.AddValue("U", dec("7"), stats.None))
	// 100 * 1.25 * 1.2 + 7
	assertDecimal(t, "157", s.CalculateTotal(stats.None))
}

func TestStat_InverseMultipliers(t *testing.T) {
	s := stats.NewArena().NewStat("Damage", stats.WithInverseMultipliers())
	require.NoError(t, s.Base.AddValue("Base", dec("100"), stats.None))
	require.NoError(t, s.MultiplicativeMultipliers.AddValue("R", dec("25"), stats.None))
	assertDecimal(t, "75", s.CalculateTotal(stats.None))
}

func TestStat_Cap(t *testing.T) {
	s := stats.NewArena().NewStat("Crit", stats.WithDefaultCap(dec("100")))
	require.NoError(t, s.Base.AddValue("A", dec("70"), stats.None))
	require.NoError(t, s.Base.AddValue("B", dec("60"), stats.None))

	assertDecimal(t, "100", s.CalculateTotal(stats.None))
	assertDecimal(t, "130", s.Uncapped())
	assert.True(t, s.IsOvercapped())

	require.NoError(t, s.Base.SetValue("B", dec("30")))
	assertDecimal(t, "100", s.CalculateTotal(stats.None))
	assert.False(t, s.IsOvercapped(), "exactly at cap is not overcapped")

	require.NoError(t, s.Base.SetValue("B", dec("10")))
	assertDecimal(t, "80", s.CalculateTotal(stats.None))
	assert.False(t, s.IsOvercapped())
}

func TestStat_ModifiedCapOverridesDefault(t *testing.T) {
	s := stats.NewArena().NewStat("Crit", stats.WithDefaultCap(dec("100")))
	require.NoError(t, s.Base.AddValue("A", dec("70"), stats.None))
	assertDecimal(t, "70", s.CalculateTotal(stats.None))

	s.SetModifiedCap(decimal.NewNullDecimal(dec("50")))
	assertDecimal(t, "50", s.CalculateTotal(stats.None))
	assertDecimal(t, "50", s.CapInUse().Decimal)

	s.SetModifiedCap(decimal.NullDecimal{})
	assertDecimal(t, "70", s.CalculateTotal(stats.None))
}

func TestStat_FloorAppliesWithoutCap(t *testing.T) {
	s := stats.NewArena().NewStat("Health")
	require.NoError(t, s.Base.AddValue("Curse", dec("-40"), stats.None))
	assertDecimal(t, "0", s.CalculateTotal(stats.None))
	assertDecimal(t, "-40", s.Uncapped())

	f := stats.NewArena().NewStat("Health", stats.WithMinValue(dec("-10")))
	require.NoError(t, f.Base.AddValue("Curse", dec("-40"), stats.None))
	assertDecimal(t, "-10", f.CalculateTotal(stats.None))
}

func TestStat_CacheInvalidatedByConstituentList(t *testing.T) {
	rec := &stats.CountingRecorder{}
	s := stats.NewArena(stats.WithRecorder(rec)).NewStat("Speed")
	require.NoError(t, s.Base.AddValue("Base", dec("100"), stats.None))

	s.CalculateTotal(stats.None)
	s.CalculateTotal(stats.None)
	assert.Equal(t, 1, rec.Stats)

	require.NoError(t, s.AdditiveMultipliers.AddValue("Potion", dec("50"), stats.None))
	assertDecimal(t, "150", s.CalculateTotal(stats.None))
	assert.Equal(t, 2, rec.Stats)
}

func TestStat_CacheKeyIsTagEquality(t *testing.T) {
	rec := &stats.CountingRecorder{}
	s := stats.NewArena(stats.WithRecorder(rec)).NewStat("Strength")
	require.NoError(t, s.Base.AddValue("Base", dec("10"), stats.None))
	require.NoError(t, s.Base.AddValue("Slayer", dec("5"), stats.Slayer))

	assertDecimal(t, "10", s.CalculateTotal(stats.None))
	assertDecimal(t, "15", s.CalculateTotal(stats.Slayer))
	assertDecimal(t, "10", s.CalculateTotal(stats.None))
	assert.Equal(t, 3, rec.Stats)
}

func TestStat_OnChange(t *testing.T) {
	s := stats.NewArena().NewStat("Crit", stats.WithDefaultCap(dec("100")))
	require.NoError(t, s.Base.AddValue("A", dec("120"), stats.None))

	var gotResult, gotUncapped decimal.Decimal
	calls := 0
	s.OnChange(func(result, uncapped decimal.Decimal) {
		calls++
		gotResult, gotUncapped = result, uncapped
	})
	s.CalculateTotal(stats.None)
	s.CalculateTotal(stats.None)
	assert.Equal(t, 1, calls)
	assertDecimal(t, "100", gotResult)
	assertDecimal(t, "120", gotUncapped)
}

func TestStat_ResultRefreshesWhenStale(t *testing.T) {
	s := stats.NewArena().NewStat("Defense")
	require.NoError(t, s.Base.AddValue("Armor", dec("10"), stats.None))
	s.CalculateTotal(stats.None)
	require.NoError(t, s.Base.SetValue("Armor", dec("25")))
	assertDecimal(t, "25", s.Result())
}

func TestPropertyStat_CapAndFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capValue := decimalGen(0, 2000).Draw(t, "cap")
		s := stats.NewArena().NewStat("Test", stats.WithDefaultCap(capValue))
		n := rapid.IntRange(0, 6).Draw(t, "n")
		for i := 0; i < n; i++ {
			require.NoError(t, s.Base.AddValue(string(rune('a'+i)), decimalGen(-1000, 1000).Draw(t, "v"), stats.None))
		}
		result := s.CalculateTotal(stats.None)
		uncapped := s.Uncapped()
		assert.True(t, result.LessThanOrEqual(capValue))
		assert.True(t, result.GreaterThanOrEqual(decimal.Zero))
		assert.Equal(t, uncapped.GreaterThan(capValue), s.IsOvercapped())
	})
}

func TestPropertyStat_MatchesReferenceFormula(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := stats.NewArena().NewStat("Test")
		lists := []*stats.ModifierList{s.Base, s.Unscalable, s.AdditiveMultipliers, s.MultiplicativeMultipliers}
		models := make([]map[string]modelMod, len(lists))
		for i := range models {
			models[i] = map[string]modelMod{}
		}
		tagPool := []stats.Tag{stats.None, stats.Undead, stats.Ender}

		steps := rapid.IntRange(1, 25).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			li := rapid.IntRange(0, 3).Draw(t, "list")
			id := string(rune('a' + rapid.IntRange(0, 3).Draw(t, "id")))
			v := decimalGen(-300, 300).Draw(t, "value")
			if _, ok := models[li][id]; ok {
				require.NoError(t, lists[li].SetValue(id, v))
				m := models[li][id]
				m.value = v
				models[li][id] = m
			} else {
				req := rapid.SampledFrom(tagPool).Draw(t, "required")
				require.NoError(t, lists[li].AddValue(id, v, req))
				models[li][id] = modelMod{value: v, required: req}
			}

			tags := rapid.SampledFrom(tagPool).Draw(t, "tags")
			base := referenceTotal(stats.Sum, models[0], tags)
			unscalable := referenceTotal(stats.Sum, models[1], tags)
			additive := decimal.NewFromInt(1).Add(referenceTotal(stats.Sum, models[2], tags).Div(decimal.NewFromInt(100)))
			mult := decimal.NewFromInt(1).Add(referenceTotal(stats.Product, models[3], tags))
			want := decimal.Max(base.Mul(additive).Mul(mult).Add(unscalable), decimal.Zero)

			got := s.CalculateTotal(tags)
			require.Truef(t, want.Equal(got), "want %s got %s", want, got)
		}
	})
}
