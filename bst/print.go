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
	"io"
	"strings"
)

// branch and guide segments of the rendering
const (
	leftBranch  = "└── "
	rightBranch = "┌── "
	guide       = "│   "
	blank       = "    "
)

// Fprint writes an ASCII graphic representation of the tree to w, one key per
// line with the right subtree above and the left subtree below its parent.
// Nothing is written for an empty tree.
func (t *Tree[K]) Fprint(w io.Writer) error {
	root, ok := t.Root()
	if !ok {
		return nil
	}
	return fprint(w, root, "", true)
}

// fprint renders the subtree rooted at n.  isLeft tells whether n hangs to
// the left of its parent; the root is drawn as a left child.
func fprint[K Key](w io.Writer, n Node[K], prefix string, isLeft bool) error {
	if right, ok := n.Right(); ok {
		next := prefix + blank
		if isLeft {
			next = prefix + guide
		}
		if err := fprint(w, right, next, false); err != nil {
			return err
		}
	}

	branch := rightBranch
	if isLeft {
		branch = leftBranch
	}
	if _, err := fmt.Fprintf(w, "%s%s%v\n", prefix, branch, n.Key()); err != nil {
		return err
	}

	if left, ok := n.Left(); ok {
		next := prefix + guide
		if isLeft {
			next = prefix + blank
		}
		return fprint(w, left, next, true)
	}
	return nil
}

// String returns the same representation as Fprint.
func (t *Tree[K]) String() string {
	var sb strings.Builder
	t.Fprint(&sb)
	return sb.String()
}
