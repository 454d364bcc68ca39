package container

import "container/list"

// Queue is a FIFO backed by a doubly linked list.
type Queue[T any] struct {
	l list.List
}

// NewQueue returns an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue appends item at the tail.
func (q *Queue[T]) Enqueue(item T) {
	q.l.PushBack(item)
}

// Dequeue removes and returns the head item.
func (q *Queue[T]) Dequeue() (item T, ok bool) {
	front := q.l.Front()
	if front == nil {
		return item, false
	}
	return q.l.Remove(front).(T), true
}

// Peek returns the head item without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	front := q.l.Front()
	if front == nil {
		return item, false
	}
	return front.Value.(T), true
}

func (q *Queue[T]) IsEmpty() bool { return q.l.Len() == 0 }

func (q *Queue[T]) Size() int { return q.l.Len() }
