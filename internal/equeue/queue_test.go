// Copyright 2024 The Gokeyer Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package equeue

import (
	"testing"

	"github.com/jl1nie/gokeyer/internal/element"
)

func TestEnqueueDequeueOrder(t *testing.T) {
	q := New(4)
	q.TryEnqueue(element.Dit)
	q.TryEnqueue(element.Dah)
	if e, ok := q.TryDequeue(); !ok || e != element.Dit {
		t.Fatalf("first TryDequeue() = %v, %v, want Dit, true", e, ok)
	}
	if e, ok := q.TryDequeue(); !ok || e != element.Dah {
		t.Fatalf("second TryDequeue() = %v, %v, want Dah, true", e, ok)
	}
	if _, ok := q.TryDequeue(); ok {
		t.Fatal("TryDequeue() on empty queue returned ok=true")
	}
}

func TestOverflowDropsNewest(t *testing.T) {
	q := New(2)
	if !q.TryEnqueue(element.Dit) {
		t.Fatal("expected first enqueue to succeed")
	}
	if !q.TryEnqueue(element.Dah) {
		t.Fatal("expected second enqueue to succeed")
	}
	if q.TryEnqueue(element.Dit) {
		t.Fatal("expected third enqueue to fail: queue is full")
	}
	// Drop-newest: the queue is untouched by the failed attempt.
	if e, _ := q.TryDequeue(); e != element.Dit {
		t.Fatalf("TryDequeue() = %v, want Dit (original order preserved)", e)
	}
	if e, _ := q.TryDequeue(); e != element.Dah {
		t.Fatalf("TryDequeue() = %v, want Dah", e)
	}
}

func TestWrapsAroundBackingArray(t *testing.T) {
	q := New(2)
	for i := 0; i < 10; i++ {
		if !q.TryEnqueue(element.Dit) {
			t.Fatalf("iteration %d: enqueue failed", i)
		}
		e, ok := q.TryDequeue()
		if !ok || e != element.Dit {
			t.Fatalf("iteration %d: dequeue = %v, %v", i, e, ok)
		}
	}
}

func TestIsEmptyIsFull(t *testing.T) {
	q := New(1)
	if !q.IsEmpty() || q.IsFull() {
		t.Fatal("new queue should be empty, not full")
	}
	q.TryEnqueue(element.Dah)
	if q.IsEmpty() || !q.IsFull() {
		t.Fatal("single-capacity queue with one item should be full, not empty")
	}
}
