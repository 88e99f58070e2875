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

package main

import (
	"bytes"
	"testing"

	"github.com/9rum/bst/bst"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		keys:   []int64{3, 6, 7, 9, 10, 13, 14, 20},
		find:   []int64{14, 15},
		insert: []int64{90, 90},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "found 14 at depth 2, height 2\n")
	require.Contains(t, out, "15 not found\n")
	require.Contains(t, out, "90 already present\n")
	require.Contains(t, out, "│               ┌── 90\n")
	require.Contains(t, out, "9 6 13 3 7 10 14 20 90")
	require.Contains(t, out, "3 6 7 9 10 13 14 20 90")
}

func TestRunRebalance(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		keys:      []int64{1, 2, 3},
		insert:    []int64{4, 5, 6, 7},
		remove:    []int64{8},
		rebalance: true,
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "8 not present\n")
	require.Contains(t, out, "4 2 1 3 6 5 7")
	require.Contains(t, out, bst.LevelOrder.String())
}

func TestRunUnsorted(t *testing.T) {
	err := run(new(bytes.Buffer), options{keys: []int64{2, 1}})
	require.ErrorIs(t, err, bst.ErrUnsorted)
}
