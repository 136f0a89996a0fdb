package utils

// PriorityQueue is a binary heap over a dense slice.
//
// Ordering is injected: ordered(a, b) reports whether a belongs above b.
// Passing a less-than comparator yields a min-heap, greater-than a max-heap.
// Elements that compare equal come out in no particular order; callers that
// need a stable order must fold a tiebreaker into the comparator.
//
// The queue is not safe for concurrent use.
type PriorityQueue[T any] struct {
	heap    []T
	ordered func(a, b T) bool
}

// NewPriorityQueue creates an empty queue ordered by the given comparator
func NewPriorityQueue[T any](ordered func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{ordered: ordered}
}

// Len returns the number of queued elements
func (q *PriorityQueue[T]) Len() int { return len(q.heap) }

// IsEmpty reports whether the queue holds no elements
func (q *PriorityQueue[T]) IsEmpty() bool { return len(q.heap) == 0 }

// Enqueue adds an element to the queue
func (q *PriorityQueue[T]) Enqueue(element T) {
	q.heap = append(q.heap, element)
	q.siftUp(len(q.heap) - 1)
}

// Dequeue removes and returns the root element.
// Returns false when the queue is empty.
func (q *PriorityQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.heap) == 0 {
		return zero, false
	}

	last := len(q.heap) - 1
	q.swap(0, last)
	root := q.heap[last]
	q.heap[last] = zero
	q.heap = q.heap[:last]
	q.siftDown(0)

	return root, true
}

// Peek returns the root element without removing it
func (q *PriorityQueue[T]) Peek() (T, bool) {
	if len(q.heap) == 0 {
		var zero T
		return zero, false
	}
	return q.heap[0], true
}

// Remove deletes the first element matching the given one under equal.
// Returns false if no element matched.
func (q *PriorityQueue[T]) Remove(element T, equal func(a, b T) bool) bool {
	index := -1
	for i, candidate := range q.heap {
		if equal(candidate, element) {
			index = i
			break
		}
	}
	if index < 0 {
		return false
	}

	var zero T
	last := len(q.heap) - 1
	if index != last {
		q.swap(index, last)
	}
	q.heap[last] = zero
	q.heap = q.heap[:last]

	if index < len(q.heap) {
		// The element moved into index can violate the heap in either direction
		q.siftDown(index)
		q.siftUp(index)
	}

	return true
}

// First returns the first element, in heap order, satisfying where.
// The heap is not modified.
func (q *PriorityQueue[T]) First(where func(T) bool) (T, bool) {
	for _, element := range q.heap {
		if where(element) {
			return element, true
		}
	}
	var zero T
	return zero, false
}

// Clear empties the queue, keeping the backing array for reuse
func (q *PriorityQueue[T]) Clear() {
	clear(q.heap)
	q.heap = q.heap[:0]
}

// Elements returns a copy of the backing heap array in heap order
func (q *PriorityQueue[T]) Elements() []T {
	out := make([]T, len(q.heap))
	copy(out, q.heap)
	return out
}

func (q *PriorityQueue[T]) swap(i, j int) {
	q.heap[i], q.heap[j] = q.heap[j], q.heap[i]
}

func (q *PriorityQueue[T]) siftUp(child int) {
	for child > 0 {
		parent := (child - 1) / 2
		if !q.ordered(q.heap[child], q.heap[parent]) {
			return
		}
		q.swap(child, parent)
		child = parent
	}
}

func (q *PriorityQueue[T]) siftDown(parent int) {
	n := len(q.heap)
	for {
		left := 2*parent + 1
		if left >= n {
			return
		}

		candidate := parent
		if q.ordered(q.heap[left], q.heap[candidate]) {
			candidate = left
		}
		if right := left + 1; right < n && q.ordered(q.heap[right], q.heap[candidate]) {
			candidate = right
		}
		if candidate == parent {
			return
		}

		q.swap(parent, candidate)
		parent = candidate
	}
}
