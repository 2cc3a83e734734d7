// Package number implements the unsigned arithmetic discipline of the ledger
// and the swap engine: credits saturate at the top of the range, debits are
// checked, and cross-multiplications go through arbitrary precision so the
// intermediate products never wrap.
package number

import (
	"math"
	"math/big"
)

// SaturatingAdd returns a+b capped at MaxUint64.
func SaturatingAdd(a, b uint64) uint64 {
	if c := a + b; c >= a {
		return c
	}
	return math.MaxUint64
}

// SaturatingSub returns a-b floored at zero.
func SaturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// CheckedSub returns a-b, reporting false on underflow.
func CheckedSub(a, b uint64) (uint64, bool) {
	if a < b {
		return 0, false
	}
	return a - b, true
}

// MulDiv returns floor(a*b/den) computed without intermediate overflow,
// saturated to MaxUint64. den must be non-zero.
func MulDiv(a, b, den uint64) uint64 {
	num := new(big.Int).Mul(
		new(big.Int).SetUint64(a),
		new(big.Int).SetUint64(b),
	)
	num.Quo(num, new(big.Int).SetUint64(den))

	return SaturateBig(num)
}

// SaturateBig clamps a non-negative big integer to uint64.
func SaturateBig(v *big.Int) uint64 {
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
