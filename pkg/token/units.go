package token

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the fixed native-unit exponent of the reference network
// (1 ETH = 10^18 wei).
const NativeDecimals = 18

// FromUnits converts a raw on-chain integer amount to its decimal
// representation: raw / 10^decimals. Display precision, not ledger precision.
func FromUnits(raw *big.Int, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// ToUnits converts a decimal amount to integer base units: amount * 10^decimals.
// Any fraction below one base unit is truncated.
func ToUnits(amount decimal.Decimal, decimals uint8) *big.Int {
	return amount.Shift(int32(decimals)).BigInt()
}

// ParseAmount parses a decimal string in display units to integer base units.
func ParseAmount(amount string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %v", amount, err)
	}
	return ToUnits(d, decimals), nil
}

// GweiToWei converts a decimal gwei string (the gas-price unit callers
// supply) to wei.
func GweiToWei(gwei string) (*big.Int, error) {
	d, err := decimal.NewFromString(gwei)
	if err != nil {
		return nil, fmt.Errorf("invalid gas price %q: %v", gwei, err)
	}
	return d.Shift(9).BigInt(), nil
}
