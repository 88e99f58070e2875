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

// Command bstdemo builds a binary search tree from sorted keys, applies a
// few lookups and mutations to it and prints the result.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/9rum/bst/bst"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

// options holds the parsed command line of a single run.
type options struct {
	keys      []int64
	find      []int64
	insert    []int64
	remove    []int64
	rebalance bool
}

func main() {
	app := &cli.App{
		Name:  "bstdemo",
		Usage: "Build, query and print a binary search tree",
		Flags: []cli.Flag{
			&cli.Int64SliceFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Value:   cli.NewInt64Slice(3, 6, 7, 9, 10, 13, 14, 20),
				Usage:   "Keys to build the tree from, in strictly ascending order",
			},
			&cli.Int64SliceFlag{
				Name:    "find",
				Aliases: []string{"f"},
				Value:   cli.NewInt64Slice(14),
				Usage:   "Keys to look up",
			},
			&cli.Int64SliceFlag{
				Name:    "insert",
				Aliases: []string{"i"},
				Value:   cli.NewInt64Slice(90),
				Usage:   "Keys to insert",
			},
			&cli.Int64SliceFlag{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Keys to remove",
			},
			&cli.BoolFlag{
				Name:  "rebalance",
				Usage: "Rebalance the tree before printing it",
			},
		},
		Action: func(ctx *cli.Context) error {
			return run(ctx.App.Writer, options{
				keys:      ctx.Int64Slice("keys"),
				find:      ctx.Int64Slice("find"),
				insert:    ctx.Int64Slice("insert"),
				remove:    ctx.Int64Slice("remove"),
				rebalance: ctx.Bool("rebalance"),
			})
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options) error {
	tree, err := bst.Build(opts.keys)
	if err != nil {
		return fmt.Errorf("failed to build tree: %w", err)
	}

	for _, key := range opts.find {
		if n, ok := tree.Find(key); ok {
			fmt.Fprintf(w, "found %d at depth %d, height %d\n", n.Key(), n.Depth(), n.Height())
		} else {
			fmt.Fprintf(w, "%d not found\n", key)
		}
	}
	for _, key := range opts.insert {
		if !tree.Insert(key) {
			fmt.Fprintf(w, "%d already present\n", key)
		}
	}
	for _, key := range opts.remove {
		if !tree.Remove(key) {
			fmt.Fprintf(w, "%d not present\n", key)
		}
	}
	if opts.rebalance {
		tree.Rebalance()
	}

	if err := tree.Fprint(w); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleColoredBright)
	t.AppendHeader(table.Row{"Order", "Keys"})
	for _, order := range []bst.Order{bst.PreOrder, bst.InOrder, bst.PostOrder, bst.LevelOrder} {
		t.AppendRow(table.Row{order, join(tree.Keys(order))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"height", tree.Height()})
	t.AppendRow(table.Row{"balanced", tree.IsBalanced()})
	t.Render()

	return nil
}

func join(keys []int64) string {
	return strings.Join(lo.Map(keys, func(key int64, _ int) string {
		return fmt.Sprint(key)
	}), " ")
}
