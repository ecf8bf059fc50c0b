package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "Test") })
	assert.PanicsWithValue(t, "Assertion failed: Test", func() { Assert(false, "Test") })
}

func TestIsUnsigned(t *testing.T) {
	assert.False(t, IsUnsigned(-1))
	assert.False(t, IsUnsigned(-999))
	assert.True(t, IsUnsigned(0))
	assert.True(t, IsUnsigned(1))
	assert.True(t, IsUnsigned(100))
}
