package container

import "container/list"

// Stack is a LIFO backed by a doubly linked list.
type Stack[T any] struct {
	l list.List
}

// NewStack returns an empty stack.
func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push places item on top.
func (s *Stack[T]) Push(item T) {
	s.l.PushFront(item)
}

// Pop removes and returns the top item.
func (s *Stack[T]) Pop() (item T, ok bool) {
	top := s.l.Front()
	if top == nil {
		return item, false
	}
	return s.l.Remove(top).(T), true
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (item T, ok bool) {
	top := s.l.Front()
	if top == nil {
		return item, false
	}
	return top.Value.(T), true
}

func (s *Stack[T]) IsEmpty() bool { return s.l.Len() == 0 }

func (s *Stack[T]) Size() int { return s.l.Len() }
