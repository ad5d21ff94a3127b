package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	require.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	for _, want := range []int{1, 2, 3} {
		v, err := rq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err = rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)
}

func TestRingQueuePushDropsOldest(t *testing.T) {
	rq := NewRingQueue[string](2)
	assert.False(t, rq.Push("a"))
	assert.False(t, rq.Push("b"))
	assert.True(t, rq.Push("c"))
	assert.Equal(t, []string{"b", "c"}, rq.Items())
	assert.Equal(t, 2, rq.Len())
}

func TestRingQueueZeroSize(t *testing.T) {
	rq := NewRingQueue[int](0)
	assert.True(t, rq.Push(1))
	assert.Empty(t, rq.Items())
	assert.ErrorIs(t, rq.Enqueue(1), ErrQueueFull)
}
