package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringAlwaysTwoDecimals(t *testing.T) {
	assert.Equal(t, "26.00", FromFloat(26).String())
	assert.Equal(t, "26.00", MustFromString("26").String())
	assert.Equal(t, "0.00", Zero().String())
	assert.Equal(t, "2.60", MustFromString("2.6").String())
}

func TestRoundCentsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "1.01", MustFromString("1.005").RoundCents().String())
	assert.Equal(t, "1.00", MustFromString("1.004").RoundCents().String())
	assert.Equal(t, "-1.01", MustFromString("-1.005").RoundCents().String())
}

func TestArithmetic(t *testing.T) {
	subtotal := MustFromString("26.00")
	rate := decimal.RequireFromString("0.10")

	discount := subtotal.MulRate(rate).RoundCents()
	assert.Equal(t, "2.60", discount.String())

	total := subtotal.Sub(discount).Add(MustFromString("20.00")).Add(MustFromString("5.00")).RoundCents()
	assert.Equal(t, "48.40", total.String())
	assert.False(t, total.IsNegative())
}

func TestMulInt(t *testing.T) {
	assert.Equal(t, "39.00", MustFromString("13.00").MulInt(3).String())
}

func TestJSONRoundTripAsString(t *testing.T) {
	raw, err := json.Marshal(MustFromString("48.40"))
	require.NoError(t, err)
	assert.Equal(t, `"48.40"`, string(raw))

	var back Amount
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(MustFromString("48.40")))
}

func TestFromStringRejectsGarbage(t *testing.T) {
	_, err := FromString("not-a-number")
	assert.Error(t, err)
}
