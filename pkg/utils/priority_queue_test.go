package utils

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intLess(a, b int) bool    { return a < b }
func intGreater(a, b int) bool { return a > b }
func intEqual(a, b int) bool   { return a == b }

func assertHeapInvariant(t *testing.T, q *PriorityQueue[int]) {
	t.Helper()
	elements := q.Elements()
	for i := 1; i < len(elements); i++ {
		parent := (i - 1) / 2
		assert.False(t, q.ordered(elements[i], elements[parent]),
			"child %d at index %d is ordered before parent %d at index %d", elements[i], i, elements[parent], parent)
	}
}

func drain(q *PriorityQueue[int]) []int {
	out := make([]int, 0, q.Len())
	for {
		v, ok := q.Dequeue()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestPriorityQueue_RoundTripSorts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{0, 1, 2, 100} {
		values := make([]int, n)
		for i := range values {
			values[i] = rng.Intn(50) - 25
		}

		minQ := NewPriorityQueue(intLess)
		maxQ := NewPriorityQueue(intGreater)
		for _, v := range values {
			minQ.Enqueue(v)
			maxQ.Enqueue(v)
		}
		require.Equal(t, n, minQ.Len())
		assertHeapInvariant(t, minQ)
		assertHeapInvariant(t, maxQ)

		ascending := slices.Clone(values)
		slices.Sort(ascending)
		descending := slices.Clone(ascending)
		slices.Reverse(descending)

		assert.Equal(t, ascending, drain(minQ), "min-heap n=%d", n)
		assert.Equal(t, descending, drain(maxQ), "max-heap n=%d", n)
	}
}

func TestPriorityQueue_DequeueEmpty(t *testing.T) {
	q := NewPriorityQueue(intLess)

	v, ok := q.Dequeue()
	assert.False(t, ok)
	assert.Zero(t, v)

	_, ok = q.Peek()
	assert.False(t, ok)
	assert.True(t, q.IsEmpty())
}

func TestPriorityQueue_RemoveRestoresHeap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(40)
		q := NewPriorityQueue(intLess)
		values := make([]int, n)
		for i := range values {
			values[i] = rng.Intn(100)
			q.Enqueue(values[i])
		}

		target := values[rng.Intn(n)]
		require.True(t, q.Remove(target, intEqual))
		require.Equal(t, n-1, q.Len())
		assertHeapInvariant(t, q)

		expected := slices.Clone(values)
		idx := slices.Index(expected, target)
		expected = slices.Delete(expected, idx, idx+1)
		slices.Sort(expected)
		assert.Equal(t, expected, drain(q))
	}
}

func TestPriorityQueue_RemoveNeedsSiftUp(t *testing.T) {
	// Heap array: [1, 50, 2, 60, 70, 3, 4]. Removing 60 moves 4 under 50,
	// which only a sift-up repairs.
	q := NewPriorityQueue(intLess)
	for _, v := range []int{1, 50, 2, 60, 70, 3, 4} {
		q.Enqueue(v)
	}
	require.Equal(t, []int{1, 50, 2, 60, 70, 3, 4}, q.Elements())

	require.True(t, q.Remove(60, intEqual))
	assertHeapInvariant(t, q)
	assert.Equal(t, []int{1, 2, 3, 4, 50, 70}, drain(q))
}

func TestPriorityQueue_RemoveMissingAndLast(t *testing.T) {
	q := NewPriorityQueue(intLess)
	assert.False(t, q.Remove(3, intEqual))

	q.Enqueue(5)
	q.Enqueue(9)
	assert.False(t, q.Remove(3, intEqual))
	assert.True(t, q.Remove(9, intEqual))
	assert.True(t, q.Remove(5, intEqual))
	assert.True(t, q.IsEmpty())
}

func TestPriorityQueue_FirstDoesNotDisturbHeap(t *testing.T) {
	q := NewPriorityQueue(intLess)
	for _, v := range []int{8, 3, 5, 1, 9} {
		q.Enqueue(v)
	}
	before := q.Elements()

	found, ok := q.First(func(v int) bool { return v > 6 })
	require.True(t, ok)
	assert.Greater(t, found, 6)
	assert.Equal(t, before, q.Elements())

	_, ok = q.First(func(v int) bool { return v > 100 })
	assert.False(t, ok)
}

func TestPriorityQueue_Clear(t *testing.T) {
	q := NewPriorityQueue(intLess)
	q.Enqueue(2)
	q.Enqueue(1)

	q.Clear()
	assert.Equal(t, 0, q.Len())

	q.Enqueue(7)
	v, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 7, v)
}
