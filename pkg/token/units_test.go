package token

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUnits(t *testing.T) {
	tests := []struct {
		name     string
		raw      *big.Int
		decimals uint8
		want     string
	}{
		{"zero decimals passes through", big.NewInt(42), 0, "42"},
		{"six decimals", big.NewInt(123456789), 6, "123.456789"},
		{"eight decimals", big.NewInt(150000000), 8, "1.5"},
		{"eighteen decimals", new(big.Int).Mul(big.NewInt(25), big.NewInt(1e17)), 18, "2.5"},
		{"sub-unit dust", big.NewInt(1), 18, "0.000000000000000001"},
		{"zero", big.NewInt(0), 18, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromUnits(tt.raw, tt.decimals).String())
		})
	}
}

func TestToUnitsRoundTrip(t *testing.T) {
	amount := decimal.RequireFromString("123.456789")
	raw := ToUnits(amount, 6)
	assert.Equal(t, big.NewInt(123456789), raw)
	assert.True(t, amount.Equal(FromUnits(raw, 6)))
}

func TestParseAmount(t *testing.T) {
	raw, err := ParseAmount("1.5", 18)
	require.NoError(t, err)
	assert.Equal(t, "1500000000000000000", raw.String())

	// A fraction below one base unit truncates.
	raw, err = ParseAmount("0.0000005", 6)
	require.NoError(t, err)
	assert.Equal(t, int64(0), raw.Int64())

	_, err = ParseAmount("one and a half", 18)
	assert.Error(t, err)
}

func TestGweiToWei(t *testing.T) {
	wei, err := GweiToWei("100")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100000000000), wei)

	wei, err = GweiToWei("2.5")
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2500000000), wei)

	_, err = GweiToWei("fast")
	assert.Error(t, err)
}

func TestStandardABI(t *testing.T) {
	parsed, err := StandardABI()
	require.NoError(t, err)

	for _, name := range []string{"name", "symbol", "decimals", "totalSupply", "balanceOf", "transfer"} {
		_, ok := parsed.Methods[name]
		assert.True(t, ok, "method %s missing from standard ABI", name)
	}

	// transfer(address,uint256) keeps its canonical selector.
	assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, parsed.Methods["transfer"].ID)
}
