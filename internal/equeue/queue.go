// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package equeue implements the bounded single-producer/single-consumer
// element queue between the Element FSM and the Transmission FSM. It is a fixed-capacity ring buffer with head/tail indices, in
// the bounded lock-free-queue style surveyed from the retrieved example
// pack, sized down to what a single-threaded cooperative loop actually
// needs: both FSMs run in the same main-loop goroutine, so
// head and tail are ordinary fields, not atomics — there is no concurrent
// access to guard against, only the bookkeeping of a fixed ring.
package equeue

import "github.com/jl1nie/gokeyer/internal/element"

// Queue is a fixed-capacity ring buffer of element.Element. The zero value
// is not usable; construct with New.
//
// Queue is not safe for concurrent use. It does not need to be: the main
// loop runs the Element FSM (producer) and Transmission FSM (consumer) as
// two phases of one cooperative loop, never as separate threads. A caller
// that does split them across an interrupt handler and a scheduled task
// must serialize access itself.
type Queue struct {
	buf  []element.Element
	head uint32 // next slot to dequeue from; owned by the consumer
	tail uint32 // next slot to enqueue into; owned by the producer
	cap  uint32
}

// New returns a Queue with the given capacity, which must be > 0.
func New(capacity int) *Queue {
	if capacity <= 0 {
		panic("equeue: capacity must be positive")
	}
	return &Queue{buf: make([]element.Element, capacity), cap: uint32(capacity)}
}

// TryEnqueue attempts to add e to the queue, returning false (drop-newest)
// if the queue is full. Must only be called from the producer side.
func (q *Queue) TryEnqueue(e element.Element) bool {
	tail := q.tail
	head := q.head
	if tail-head >= q.cap {
		return false
	}
	q.buf[tail%q.cap] = e
	q.tail = tail + 1
	return true
}

// TryDequeue removes and returns the oldest element, or ok=false if the
// queue is empty. Must only be called from the consumer side.
func (q *Queue) TryDequeue() (e element.Element, ok bool) {
	head := q.head
	tail := q.tail
	if head == tail {
		return 0, false
	}
	e = q.buf[head%q.cap]
	q.head = head + 1
	return e, true
}

// IsEmpty reports whether the queue currently holds no elements.
func (q *Queue) IsEmpty() bool {
	return q.head == q.tail
}

// IsFull reports whether the queue is at capacity.
func (q *Queue) IsFull() bool {
	return q.tail-q.head >= q.cap
}

// Len returns the number of elements currently queued.
func (q *Queue) Len() int {
	return int(q.tail - q.head)
}

// Cap returns the queue's fixed capacity.
func (q *Queue) Cap() int {
	return int(q.cap)
}
