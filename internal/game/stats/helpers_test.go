package stats_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t assert.TestingT, want string, got decimal.Decimal) bool {
	return assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

// decimalGen draws a decimal in [-lo/10, hi/10] with one fractional digit.
func decimalGen(lo, hi int64) *rapid.Generator[decimal.Decimal] {
	return rapid.Custom(func(t *rapid.T) decimal.Decimal {
		return decimal.New(rapid.Int64Range(lo, hi).Draw(t, "tenths"), -1)
	})
}

func tagGen() *rapid.Generator[uint32] {
	return rapid.Uint32Range(0, 1<<20-1)
}
