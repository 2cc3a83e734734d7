package number

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64-10, 11))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64-10, 10))
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(1), SaturatingSub(3, 2))
	assert.Equal(t, uint64(0), SaturatingSub(2, 3))
	assert.Equal(t, uint64(0), SaturatingSub(0, math.MaxUint64))
}

func TestCheckedSub(t *testing.T) {
	v, ok := CheckedSub(3, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), v)

	_, ok = CheckedSub(2, 3)
	assert.False(t, ok)

	v, ok = CheckedSub(5, 5)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, uint64(10), MulDiv(100, 42, 420))
	// floor division
	assert.Equal(t, uint64(16), MulDiv(100, 1, 6))
	// intermediate product exceeds 64 bits
	assert.Equal(t, uint64(math.MaxUint64/2), MulDiv(math.MaxUint64, 1, 2))
	// result exceeds 64 bits and saturates
	assert.Equal(t, uint64(math.MaxUint64), MulDiv(math.MaxUint64, 3, 2))
}
