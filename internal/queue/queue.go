// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package queue implements an unbounded first-in-first-out queue.
//
// It is a minimal container used to hold the frontier of a level-order tree
// traversal; it is not meant as a general-purpose collection.
package queue

// element is a single link in the queue.  It does not own value.
type element[T any] struct {
	value T
	next  *element[T]
}

// Queue is a singly linked FIFO queue.  The zero value is an empty queue
// ready to use.
//
// Queue is not safe for concurrent use by multiple goroutines.
type Queue[T any] struct {
	head   *element[T]
	tail   *element[T]
	length int
}

// New creates a new empty queue.
func New[T any]() *Queue[T] {
	return new(Queue[T])
}

// Enqueue appends the given value to the tail of the queue.
func (q *Queue[T]) Enqueue(value T) {
	e := &element[T]{value: value}
	if q.tail == nil {
		q.head = e
	} else {
		q.tail.next = e
	}
	q.tail = e
	q.length++
}

// Dequeue removes the value at the head of the queue and returns it.  It
// returns (zeroValue, false) and leaves the queue untouched if the queue is
// empty.
func (q *Queue[T]) Dequeue() (_ T, _ bool) {
	if q.head == nil {
		return
	}
	e := q.head
	q.head = e.next
	if q.head == nil {
		q.tail = nil
	}
	e.next = nil
	q.length--
	return e.value, true
}

// Front returns the value at the head of the queue without removing it, or
// (zeroValue, false) if the queue is empty.
func (q *Queue[T]) Front() (_ T, _ bool) {
	if q.head == nil {
		return
	}
	return q.head.value, true
}

// Len returns the number of values currently in the queue.
func (q *Queue[T]) Len() int {
	return q.length
}
