package damage_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/simu/internal/game/stats"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t assert.TestingT, want string, got decimal.Decimal) bool {
	return assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func baseStats(t require.TestingT) *stats.Stats {
	s := stats.New()
	require.NoError(t, s.AddBaseStats())
	return s
}

func addBase(t require.TestingT, st *stats.Stat, id, value string) {
	require.NoError(t, st.Base.Add(stats.NewModifier(id, dec(value))))
}
