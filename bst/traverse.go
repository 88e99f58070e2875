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

package bst

import (
	"fmt"
	"strings"

	"github.com/9rum/bst/internal/queue"
)

// Order details the order in which a traversal visits the nodes.
type Order int

const (
	PreOrder   Order = iota // node, then left subtree, then right subtree
	InOrder                 // left subtree, then node, then right subtree
	PostOrder               // left subtree, then right subtree, then node
	LevelOrder              // breadth-first, left to right within a level
)

var orderNames = [...]string{
	PreOrder:   "preorder",
	InOrder:    "inorder",
	PostOrder:  "postorder",
	LevelOrder: "levelorder",
}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder returns the order with the given name.  Names are matched
// case-insensitively, and "level" and "bfs" are accepted for LevelOrder.
func ParseOrder(name string) (Order, error) {
	switch name = strings.ToLower(strings.TrimSpace(name)); name {
	case "level", "bfs":
		return LevelOrder, nil
	}
	for o, n := range orderNames {
		if n == name {
			return Order(o), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrOrder, name)
}

// Visitor is called for every node visited by a traversal, in visitation
// order.  It must not modify the tree.
type Visitor[K Key] func(Node[K])

// stopper is called for every slot visited by a traversal; returning true
// stops the traversal at that slot.
type stopper func(n int) bool

// depthFirst visits the subtree rooted at n in the given order and returns
// the slot at which stop returned true, or nilSlot.  The recursion depth is
// bounded by the height of the subtree.
func (t *Tree[K]) depthFirst(order Order, n int, stop stopper) int {
	if n == nilSlot {
		return nilSlot
	}
	nd := t.nodes[n]
	if order == PreOrder && stop(n) {
		return n
	}
	if found := t.depthFirst(order, nd.left, stop); found != nilSlot {
		return found
	}
	if order == InOrder && stop(n) {
		return n
	}
	if found := t.depthFirst(order, nd.right, stop); found != nilSlot {
		return found
	}
	if order == PostOrder && stop(n) {
		return n
	}
	return nilSlot
}

// levelOrder visits the tree breadth-first and returns the slot at which
// stop returned true, or nilSlot.  The frontier is kept in a queue that lives
// only for the duration of the call.
func (t *Tree[K]) levelOrder(stop stopper) int {
	if t.root == nilSlot {
		return nilSlot
	}
	frontier := queue.New[int]()
	frontier.Enqueue(t.root)
	for 0 < frontier.Len() {
		n, _ := frontier.Front()
		if stop(n) {
			return n
		}
		if left := t.nodes[n].left; left != nilSlot {
			frontier.Enqueue(left)
		}
		if right := t.nodes[n].right; right != nilSlot {
			frontier.Enqueue(right)
		}
		frontier.Dequeue()
	}
	return nilSlot
}

// searchFor builds a stopper that reports every visited slot to visit, if
// any, and stops at the slot holding key.
func (t *Tree[K]) searchFor(key K, visit Visitor[K]) stopper {
	return func(n int) bool {
		if visit != nil {
			visit(Node[K]{tree: t, slot: n})
		}
		return t.nodes[n].key == key
	}
}

// forEach builds a stopper that reports every visited slot to visit and never
// stops.
func (t *Tree[K]) forEach(visit Visitor[K]) stopper {
	return func(n int) bool {
		visit(Node[K]{tree: t, slot: n})
		return false
	}
}

// checkDepthFirst panics unless order is a depth-first order.
func checkDepthFirst(order Order) {
	switch order {
	case PreOrder, InOrder, PostOrder:
	default:
		panic(fmt.Sprintf("bst: %v is not a depth-first order", order))
	}
}

// DepthFirstSearch visits the tree in the given depth-first order until it
// reaches the node holding key, returning it.  visit, if not nil, is called
// for every node visited, including the one holding key.  It returns
// (zeroValue, false) if unable to find that key.
func (t *Tree[K]) DepthFirstSearch(order Order, key K, visit Visitor[K]) (Node[K], bool) {
	checkDepthFirst(order)
	return t.handle(t.depthFirst(order, t.root, t.searchFor(key, visit)))
}

// LevelOrderSearch visits the tree breadth-first until it reaches the node
// holding key, returning it.  visit, if not nil, is called for every node
// visited, including the one holding key.  It returns (zeroValue, false) if
// unable to find that key.
func (t *Tree[K]) LevelOrderSearch(key K, visit Visitor[K]) (Node[K], bool) {
	return t.handle(t.levelOrder(t.searchFor(key, visit)))
}

// Search dispatches to DepthFirstSearch or LevelOrderSearch by order.
func (t *Tree[K]) Search(order Order, key K, visit Visitor[K]) (Node[K], bool) {
	if order == LevelOrder {
		return t.LevelOrderSearch(key, visit)
	}
	return t.DepthFirstSearch(order, key, visit)
}

// DepthFirstForEach calls visit for every node in the tree in the given
// depth-first order.
func (t *Tree[K]) DepthFirstForEach(order Order, visit Visitor[K]) {
	checkDepthFirst(order)
	t.depthFirst(order, t.root, t.forEach(visit))
}

// LevelOrderForEach calls visit for every node in the tree, level by level
// and left to right within a level.
func (t *Tree[K]) LevelOrderForEach(visit Visitor[K]) {
	t.levelOrder(t.forEach(visit))
}

// ForEach dispatches to DepthFirstForEach or LevelOrderForEach by order.
func (t *Tree[K]) ForEach(order Order, visit Visitor[K]) {
	if order == LevelOrder {
		t.LevelOrderForEach(visit)
		return
	}
	t.DepthFirstForEach(order, visit)
}

// Keys extracts all keys from the tree in the given order as a slice.
func (t *Tree[K]) Keys(order Order) []K {
	out := make([]K, 0, t.length)
	t.ForEach(order, func(n Node[K]) {
		out = append(out, n.Key())
	})
	return out
}
