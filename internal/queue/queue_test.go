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

package queue

import (
	"fmt"
	"testing"
)

func TestQueue(t *testing.T) {
	const queueSize = 1000
	q := New[int]()

	for i := 0; i < 3; i++ {
		if v, ok := q.Front(); ok || v != 0 {
			t.Fatalf("empty front, got %d", v)
		}
		if v, ok := q.Dequeue(); ok || v != 0 {
			t.Fatalf("empty dequeue, got %d", v)
		}
		if q.Len() != 0 {
			t.Fatalf("empty len, got %d", q.Len())
		}

		for v := 0; v < queueSize; v++ {
			q.Enqueue(v)
			if q.Len() != v+1 {
				t.Fatalf("len after enqueue: want %d, got %d", v+1, q.Len())
			}
			if front, ok := q.Front(); !ok || front != 0 {
				t.Fatalf("front after enqueue: want 0, got %d", front)
			}
		}

		for want := 0; want < queueSize; want++ {
			if front, ok := q.Front(); !ok || front != want {
				t.Fatalf("front: want %d, got %d", want, front)
			}
			if v, ok := q.Dequeue(); !ok || v != want {
				t.Fatalf("dequeue: want %d, got %d", want, v)
			}
			if q.Len() != queueSize-want-1 {
				t.Fatalf("len after dequeue: want %d, got %d", queueSize-want-1, q.Len())
			}
		}
	}
}

func TestQueueInterleaved(t *testing.T) {
	var q Queue[string]

	q.Enqueue("a")
	q.Enqueue("b")
	if v, _ := q.Dequeue(); v != "a" {
		t.Fatalf("want a, got %q", v)
	}
	q.Enqueue("c")
	if v, _ := q.Dequeue(); v != "b" {
		t.Fatalf("want b, got %q", v)
	}
	if v, _ := q.Dequeue(); v != "c" {
		t.Fatalf("want c, got %q", v)
	}
	if q.head != nil || q.tail != nil {
		t.Fatalf("drained queue still links elements: head %v tail %v", q.head, q.tail)
	}

	// the tail must be rebuilt after draining
	q.Enqueue("d")
	if v, ok := q.Front(); !ok || v != "d" {
		t.Fatalf("want d, got %q", v)
	}
	if q.head != q.tail {
		t.Fatal("single element queue must have head == tail")
	}
}

func ExampleQueue() {
	q := New[int]()
	for i := 1; i <= 3; i++ {
		q.Enqueue(i * 10)
	}
	front, _ := q.Front()
	fmt.Println("len:  ", q.Len())
	fmt.Println("front:", front)
	for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
		fmt.Println("value:", v)
	}
	fmt.Println("len:  ", q.Len())
	// Output:
	// len:   3
	// front: 10
	// value: 10
	// value: 20
	// value: 30
	// len:   0
}

func BenchmarkQueue(b *testing.B) {
	q := New[int]()
	for i := 0; i < b.N; i++ {
		q.Enqueue(i)
		q.Enqueue(i)
		q.Dequeue()
	}
}
