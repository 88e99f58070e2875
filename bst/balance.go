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

// height returns the height of the subtree rooted at n, which is 0 for an
// empty subtree.
func (t *Tree[K]) height(n int) int {
	if n == nilSlot {
		return 0
	}
	return 1 + max(t.height(t.nodes[n].left), t.height(t.nodes[n].right))
}

// Height returns the height of the tree: 0 if it is empty, 1 if it holds a
// single key.  It is recomputed on every call.
func (t *Tree[K]) Height() int {
	return t.height(t.root)
}

// IsBalanced tests whether the heights of the left and right subtrees of
// every node differ by at most one.  An empty tree is balanced.
func (t *Tree[K]) IsBalanced() bool {
	// Subtree heights are filled in post-order, so both children are known by
	// the time a node is visited.
	heights := make([]int, len(t.nodes))
	h := func(n int) int {
		if n == nilSlot {
			return 0
		}
		return heights[n]
	}

	unbalanced := t.depthFirst(PostOrder, t.root, func(n int) bool {
		left, right := h(t.nodes[n].left), h(t.nodes[n].right)
		heights[n] = 1 + max(left, right)
		return 1 < left-right || 1 < right-left
	})
	return unbalanced == nilSlot
}

// Rebalance rebuilds the tree into a height-minimal one holding the same
// keys.  All nodes obtained from the tree before the call are invalidated.
func (t *Tree[K]) Rebalance() {
	t.build(t.Keys(InOrder))
}
