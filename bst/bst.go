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

// Package bst implements an in-memory binary search tree over unique numeric
// keys.
//
// bst is meant as an ordered index for a single process.  It is not meant
// for persistent storage solutions, and it does not rebalance itself: the
// tree built from a sorted sequence is height-minimal, but subsequent
// insertions and removals may skew it until Rebalance is called.
//
// Nodes are kept in an arena owned by the tree.  Parent and child relations
// are arena slots rather than pointers, and every structural change goes
// through a single linking primitive that updates both directions at once,
// so the back-reference from a child to its parent always agrees with the
// parent's child slot.
//
// Lookups report absence with a boolean rather than an error, duplicate
// insertions and removals of missing keys leave the tree untouched, and
// queries on an empty tree return (zeroValue, false).
package bst

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Key is the set of types that can be used as keys in the tree.  Keys are
// ordered by numeric comparison only.
type Key interface {
	constraints.Integer | constraints.Float
}

var (
	// ErrUnsorted is returned by Build when the given keys are not in strictly
	// ascending order.
	ErrUnsorted = errors.New("bst: keys are not strictly ascending")

	// ErrOrder is returned by ParseOrder for an unknown traversal order.
	ErrOrder = errors.New("bst: unknown traversal order")
)

// nilSlot denotes an empty subtree or an absent parent.
const nilSlot = -1

// node is a single element in the arena.
type node[K Key] struct {
	key    K
	parent int
	left   int
	right  int
}

// Tree is a binary search tree.
//
// A tree must be created with New or Build.  Write operations are not safe
// for concurrent mutation by multiple goroutines; callers must serialize all
// access to a tree that is being modified.
type Tree[K Key] struct {
	nodes  []node[K]
	free   []int
	root   int
	length int
}

// New creates a new empty tree.
func New[K Key]() *Tree[K] {
	return &Tree[K]{root: nilSlot}
}

// Build creates a new height-minimal tree from the given keys, which must be
// in strictly ascending order.  An empty slice yields an empty tree.
func Build[K Key](sorted []K) (*Tree[K], error) {
	for i := 1; i < len(sorted); i++ {
		if !(sorted[i-1] < sorted[i]) {
			return nil, fmt.Errorf("%w: %v at index %d follows %v", ErrUnsorted, sorted[i], i, sorted[i-1])
		}
	}
	if len(sorted) == 1 && isNaN(sorted[0]) {
		return nil, fmt.Errorf("%w: NaN at index 0", ErrUnsorted)
	}

	t := New[K]()
	t.build(sorted)
	return t, nil
}

// build replaces the contents of the tree with the given sorted keys.  The
// previous arena is dropped.
func (t *Tree[K]) build(sorted []K) {
	t.nodes = make([]node[K], 0, len(sorted))
	t.free = nil
	t.root = t.generate(sorted, 0, len(sorted)-1, nilSlot)
	t.length = len(sorted)
}

// generate links the subtree for sorted[start:end+1] below parent and
// returns its root slot.  The middle key of each range becomes the subtree
// root, which keeps the recursion depth at O(log n).
func (t *Tree[K]) generate(sorted []K, start, end, parent int) int {
	if end < start {
		return nilSlot
	}
	mid := start + (end-start)/2
	n := t.alloc(sorted[mid], parent)
	left := t.generate(sorted, start, mid-1, n)
	right := t.generate(sorted, mid+1, end, n)
	t.nodes[n].left, t.nodes[n].right = left, right
	return n
}

// alloc places a new leaf with the given key in the arena, reusing a
// released slot if one is available.
func (t *Tree[K]) alloc(key K, parent int) (n int) {
	if index := len(t.free) - 1; 0 <= index {
		n = t.free[index]
		t.free = t.free[:index]
	} else {
		n = len(t.nodes)
		t.nodes = append(t.nodes, node[K]{})
	}
	t.nodes[n] = node[K]{key: key, parent: parent, left: nilSlot, right: nilSlot}
	return
}

// release returns the given slot to the free list.
func (t *Tree[K]) release(n int) {
	t.nodes[n] = node[K]{parent: nilSlot, left: nilSlot, right: nilSlot}
	t.free = append(t.free, n)
}

// setLeft makes c the left child of p.
func (t *Tree[K]) setLeft(p, c int) {
	t.nodes[p].left = c
	if c != nilSlot {
		t.nodes[c].parent = p
	}
}

// setRight makes c the right child of p.
func (t *Tree[K]) setRight(p, c int) {
	t.nodes[p].right = c
	if c != nilSlot {
		t.nodes[c].parent = p
	}
}

// replace puts c in the structural position of n: the child slot of n's
// parent that points to n (or the root of the tree) is redirected to c, and
// c's back-reference is set to n's parent.  n itself is left unchanged.
func (t *Tree[K]) replace(n, c int) {
	p := t.nodes[n].parent
	switch {
	case p == nilSlot:
		t.root = c
	case t.nodes[p].left == n:
		t.nodes[p].left = c
	default:
		t.nodes[p].right = c
	}
	if c != nilSlot {
		t.nodes[c].parent = p
	}
}

// Len returns the number of keys currently in the tree.
func (t *Tree[K]) Len() int {
	return t.length
}

// Root returns the root node of the tree, or false if the tree is empty.
func (t *Tree[K]) Root() (Node[K], bool) {
	return t.handle(t.root)
}

// Clear removes all keys from the tree.
func (t *Tree[K]) Clear() {
	t.nodes, t.free = nil, nil
	t.root, t.length = nilSlot, 0
}

// isNaN reports whether key is a floating-point NaN, which has no place in a
// numeric ordering.
func isNaN[K Key](key K) bool {
	return key != key
}
