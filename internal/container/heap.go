// Package container provides the ready-queue structures used by the
// scheduling policies. Containers hold references and never copy items.
package container

import "container/heap"

// Compare is a three-way comparison: negative if a orders before b, zero if
// they tie, positive otherwise.
type Compare[T any] func(a, b T) int

// Heap is a binary heap ordered by a comparator. A min-heap pops the
// smallest item first, a max-heap the largest.
type Heap[T any] struct {
	items heapItems[T]
}

// NewMinHeap creates a heap that pops the item with the lowest cmp order.
func NewMinHeap[T any](cmp Compare[T]) *Heap[T] {
	return &Heap[T]{items: heapItems[T]{cmp: cmp}}
}

// NewMaxHeap creates a heap that pops the item with the highest cmp order.
func NewMaxHeap[T any](cmp Compare[T]) *Heap[T] {
	return &Heap[T]{items: heapItems[T]{cmp: func(a, b T) int { return cmp(b, a) }}}
}

// Push adds item in O(log n).
func (h *Heap[T]) Push(item T) {
	heap.Push(&h.items, item)
}

// Pop removes and returns the top item. ok is false when the heap is empty.
func (h *Heap[T]) Pop() (item T, ok bool) {
	if h.items.Len() == 0 {
		return item, false
	}
	return heap.Pop(&h.items).(T), true
}

// Peek returns the top item without removing it.
func (h *Heap[T]) Peek() (item T, ok bool) {
	if h.items.Len() == 0 {
		return item, false
	}
	return h.items.data[0], true
}

func (h *Heap[T]) IsEmpty() bool { return h.items.Len() == 0 }

func (h *Heap[T]) Size() int { return h.items.Len() }

// heapItems implements heap.Interface over a growable slice.
type heapItems[T any] struct {
	data []T
	cmp  Compare[T]
}

func (hi heapItems[T]) Len() int { return len(hi.data) }

func (hi heapItems[T]) Less(i, j int) bool {
	return hi.cmp(hi.data[i], hi.data[j]) < 0
}

func (hi heapItems[T]) Swap(i, j int) {
	hi.data[i], hi.data[j] = hi.data[j], hi.data[i]
}

func (hi *heapItems[T]) Push(x any) {
	hi.data = append(hi.data, x.(T))
}

func (hi *heapItems[T]) Pop() any {
	old := hi.data
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero // drop the reference
	hi.data = old[0 : n-1]
	return item
}
