package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_Peek(t *testing.T) {
	type T struct {
		Value1 int
		Value2 int
	}
	stack := NewStack[T](1)
	_, ok := stack.Peek()
	assert.False(t, ok)

	stack.Push(T{Value1: 1, Value2: 2})
	stack.Push(T{Value1: 3, Value2: 4})

	last, ok := stack.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, last.Value1)
	assert.Equal(t, 4, last.Value2)
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, []T{{1, 2}, {3, 4}}, stack.Slice())
}
