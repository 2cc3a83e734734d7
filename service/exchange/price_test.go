package exchange

import (
	"testing"

	"zendex/core"

	"github.com/stretchr/testify/assert"
)

func TestGetInputPrice(t *testing.T) {
	assert.Equal(t, core.TokenBalance(17), GetInputPrice(300, 420, 42))
	assert.Equal(t, core.TokenBalance(0), GetInputPrice(0, 420, 42))
	// too small to buy a single unit
	assert.Equal(t, core.TokenBalance(0), GetInputPrice(1, 1, 1))
	// selling into a deep pool approaches the spot price minus the fee
	assert.Equal(t, core.TokenBalance(996), GetInputPrice(1000, 1000000, 1000000))
}

func TestGetOutputPrice(t *testing.T) {
	assert.Equal(t, core.TokenBalance(287), GetOutputPrice(17, 420, 42))
	// the +1 bias applies even when the division is exact
	assert.Equal(t, core.TokenBalance(501), GetOutputPrice(50, 997, 150))
}

func TestPriceRoundTrip(t *testing.T) {
	// the exact-output charge always covers buying the same amount back
	for _, out := range []core.TokenBalance{1, 5, 17, 30, 41} {
		in := GetOutputPrice(out, 420, 42)
		assert.True(t, GetInputPrice(in, 420, 42) >= out, "output %d", out)
	}
}

func TestReserveProductNeverDecreases(t *testing.T) {
	const (
		currencyReserve = 420
		tokenReserve    = 42
	)
	before := uint64(currencyReserve) * uint64(tokenReserve)

	for in := core.TokenBalance(1); in <= 200; in++ {
		out := GetInputPrice(in, currencyReserve, tokenReserve)
		after := (uint64(currencyReserve) + uint64(in)) * (uint64(tokenReserve) - uint64(out))
		assert.True(t, after >= before, "input %d", in)
	}

	for out := core.TokenBalance(1); out < tokenReserve; out++ {
		in := GetOutputPrice(out, currencyReserve, tokenReserve)
		after := (uint64(currencyReserve) + uint64(in)) * (uint64(tokenReserve) - uint64(out))
		assert.True(t, after >= before, "output %d", out)
	}
}
