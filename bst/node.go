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

// Node is a read-only handle to a single node in a tree.
//
// A Node is valid until the next Insert, Remove, Rebalance or Clear on the
// tree it was obtained from; using it afterwards yields unspecified results.
type Node[K Key] struct {
	tree *Tree[K]
	slot int
}

// handle wraps the given slot, reporting false for an empty subtree.
func (t *Tree[K]) handle(slot int) (Node[K], bool) {
	if slot == nilSlot {
		return Node[K]{}, false
	}
	return Node[K]{tree: t, slot: slot}, true
}

// Key returns the key held by the node.
func (n Node[K]) Key() K {
	return n.tree.nodes[n.slot].key
}

// Parent returns the parent of the node, or false for the root.
func (n Node[K]) Parent() (Node[K], bool) {
	return n.tree.handle(n.tree.nodes[n.slot].parent)
}

// Left returns the left child of the node, or false if it has none.
func (n Node[K]) Left() (Node[K], bool) {
	return n.tree.handle(n.tree.nodes[n.slot].left)
}

// Right returns the right child of the node, or false if it has none.
func (n Node[K]) Right() (Node[K], bool) {
	return n.tree.handle(n.tree.nodes[n.slot].right)
}

// IsRoot tests whether the node is the root of its tree.
func (n Node[K]) IsRoot() bool {
	return n.tree.nodes[n.slot].parent == nilSlot
}

// Height returns the number of nodes on the longest path from the node down
// to a leaf.  A leaf has height 1.
func (n Node[K]) Height() int {
	return n.tree.height(n.slot)
}

// Depth returns the number of edges between the node and the root.
func (n Node[K]) Depth() (depth int) {
	for p := n.tree.nodes[n.slot].parent; p != nilSlot; p = n.tree.nodes[p].parent {
		depth++
	}
	return
}

// Min returns the node with the smallest key in the subtree rooted at n.
func (n Node[K]) Min() Node[K] {
	return Node[K]{tree: n.tree, slot: n.tree.min(n.slot)}
}

// Max returns the node with the largest key in the subtree rooted at n.
func (n Node[K]) Max() Node[K] {
	return Node[K]{tree: n.tree, slot: n.tree.max(n.slot)}
}
