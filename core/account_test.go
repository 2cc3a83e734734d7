package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountEmpty(t *testing.T) {
	assert.True(t, Account("").Empty())
	assert.False(t, Account("alice").Empty())
}
