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

// Remove removes the given key from the tree, returning true.  If the key is
// not in the tree, the tree is left unchanged and Remove returns false.
//
// A node with at most one child is replaced by that child.  A node with two
// children is replaced by its in-order successor, the node with the smallest
// key in its right subtree; only the path between the two is touched.
func (t *Tree[K]) Remove(key K) bool {
	target := t.find(key)
	if target == nilSlot {
		return false
	}

	n := t.nodes[target]
	switch {
	case n.left == nilSlot:
		// covers the leaf case as well, since n.right may be nilSlot
		t.replace(target, n.right)
	case n.right == nilSlot:
		t.replace(target, n.left)
	default:
		successor := t.min(n.right)
		if successor != n.right {
			// The successor has no left child, so its right subtree takes its
			// place below its parent before it moves up.
			t.replace(successor, t.nodes[successor].right)
			t.setRight(successor, n.right)
		}
		t.setLeft(successor, n.left)
		t.replace(target, successor)
	}

	t.release(target)
	t.length--
	return true
}
