package chain

import (
	"context"
	"testing"

	"zendex/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAdvance(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemory())

	height, err := s.Height(ctx)
	require.Nil(t, err)
	assert.Equal(t, uint64(0), height)

	height, err = s.Advance(ctx, 5)
	require.Nil(t, err)
	assert.Equal(t, uint64(5), height)

	height, err = s.Height(ctx)
	require.Nil(t, err)
	assert.Equal(t, uint64(5), height)

	height, err = s.Advance(ctx, 1)
	require.Nil(t, err)
	assert.Equal(t, uint64(6), height)
}
