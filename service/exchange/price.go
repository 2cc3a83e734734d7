package exchange

import (
	"math/big"

	"zendex/core"
	"zendex/pkg/number"
)

// Constant-product pricing with a fixed 0.3% fee taken from the input side.
// The cross products run through big.Int so they never wrap; results are
// clamped to the 64-bit balance range.
const (
	feeNumerator   = 997
	feeDenominator = 1000
)

// GetInputPrice returns the output amount bought for an exact input amount:
// floor(input*997*outputReserve / (inputReserve*1000 + input*997)).
func GetInputPrice(inputAmount, inputReserve, outputReserve core.TokenBalance) core.TokenBalance {
	fee := new(big.Int).Mul(
		new(big.Int).SetUint64(uint64(inputAmount)),
		big.NewInt(feeNumerator),
	)

	numerator := new(big.Int).Mul(fee, new(big.Int).SetUint64(uint64(outputReserve)))

	denominator := new(big.Int).Mul(
		new(big.Int).SetUint64(uint64(inputReserve)),
		big.NewInt(feeDenominator),
	)
	denominator.Add(denominator, fee)

	numerator.Quo(numerator, denominator)

	return core.TokenBalance(number.SaturateBig(numerator))
}

// GetOutputPrice returns the input amount charged for an exact output amount:
// inputReserve*output*1000 / ((outputReserve-output)*997) + 1. The +1 keeps
// the pool from being short-paid by the floor division. Callers must reject
// outputAmount >= outputReserve before calling.
func GetOutputPrice(outputAmount, inputReserve, outputReserve core.TokenBalance) core.TokenBalance {
	numerator := new(big.Int).Mul(
		new(big.Int).SetUint64(uint64(inputReserve)),
		new(big.Int).SetUint64(uint64(outputAmount)),
	)
	numerator.Mul(numerator, big.NewInt(feeDenominator))

	denominator := new(big.Int).Sub(
		new(big.Int).SetUint64(uint64(outputReserve)),
		new(big.Int).SetUint64(uint64(outputAmount)),
	)
	denominator.Mul(denominator, big.NewInt(feeNumerator))

	numerator.Quo(numerator, denominator)
	numerator.Add(numerator, big.NewInt(1))

	return core.TokenBalance(number.SaturateBig(numerator))
}
