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

// find returns the slot holding key, or nilSlot if there is none.
func (t *Tree[K]) find(key K) int {
	if isNaN(key) {
		return nilSlot
	}
	n := t.root
	for n != nilSlot {
		switch nd := &t.nodes[n]; {
		case key < nd.key:
			n = nd.left
		case nd.key < key:
			n = nd.right
		default:
			return n
		}
	}
	return nilSlot
}

// locate returns the slot at which a search for key ends: the node holding
// key if it exists, otherwise the node whose empty child slot is where key
// belongs.  The tree must not be empty.
func (t *Tree[K]) locate(key K) int {
	n := t.root
	for {
		switch nd := &t.nodes[n]; {
		case key < nd.key && nd.left != nilSlot:
			n = nd.left
		case nd.key < key && nd.right != nilSlot:
			n = nd.right
		default:
			return n
		}
	}
}

// min returns the leftmost slot in the subtree rooted at n.
func (t *Tree[K]) min(n int) int {
	for t.nodes[n].left != nilSlot {
		n = t.nodes[n].left
	}
	return n
}

// max returns the rightmost slot in the subtree rooted at n.
func (t *Tree[K]) max(n int) int {
	for t.nodes[n].right != nilSlot {
		n = t.nodes[n].right
	}
	return n
}

// Find looks for the node holding key, returning it.  It returns
// (zeroValue, false) if unable to find that key.
func (t *Tree[K]) Find(key K) (Node[K], bool) {
	return t.handle(t.find(key))
}

// Has returns true if the given key is in the tree.
func (t *Tree[K]) Has(key K) bool {
	return t.find(key) != nilSlot
}

// Insert adds the given key to the tree as a new leaf, returning true.  If
// the key is already in the tree, the tree is left unchanged and Insert
// returns false.  NaN is never inserted.
func (t *Tree[K]) Insert(key K) bool {
	if isNaN(key) {
		return false
	}
	if t.root == nilSlot {
		t.root = t.alloc(key, nilSlot)
		t.length++
		return true
	}

	p := t.locate(key)
	switch pkey := t.nodes[p].key; {
	case key < pkey:
		t.setLeft(p, t.alloc(key, p))
	case pkey < key:
		t.setRight(p, t.alloc(key, p))
	default:
		return false
	}
	t.length++
	return true
}

// Min returns the smallest key in the tree, or (zeroValue, false) if the tree
// is empty.
func (t *Tree[K]) Min() (_ K, _ bool) {
	if t.root == nilSlot {
		return
	}
	return t.nodes[t.min(t.root)].key, true
}

// Max returns the largest key in the tree, or (zeroValue, false) if the tree
// is empty.
func (t *Tree[K]) Max() (_ K, _ bool) {
	if t.root == nilSlot {
		return
	}
	return t.nodes[t.max(t.root)].key, true
}
