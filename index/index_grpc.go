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

//go:generate protoc --proto_path=../proto/ --go-grpc_out=. --go-grpc_opt=paths=source_relative index.proto

// Package index implements the Index service, which serves a single binary
// search tree over int64 keys to other processes.  The tree keeps its
// single-caller contract: the server serializes every call.
package index

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"

	"github.com/9rum/bst/bst"
	"github.com/9rum/bst/internal/config"
	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// maxExactKey is the largest magnitude at which every integer is exactly
// representable as a protobuf number value.
const maxExactKey = 1 << 53

// indexServer implements the server API for Index service.
type indexServer struct {
	UnimplementedIndexServer
	mu            sync.Mutex
	tree          *bst.Tree[int64]
	autoRebalance bool
	metrics       *Metrics
	done          chan<- os.Signal
	finalize      sync.Once
}

// NewIndexServer creates a new index server holding a tree built from the
// configured keys.  Finalize closes done.
func NewIndexServer(done chan<- os.Signal, cfg *config.Config, metrics *Metrics) (IndexServer, error) {
	tree, err := bst.Build(cfg.Keys)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	s := &indexServer{
		tree:          tree,
		autoRebalance: cfg.AutoRebalance,
		metrics:       metrics,
		done:          done,
	}
	s.observe()
	glog.Infof("index initialized with %d keys, auto rebalance: %v", tree.Len(), cfg.AutoRebalance)

	return s, nil
}

// observe updates the tree gauges.  The caller must hold s.mu.
func (s *indexServer) observe() {
	s.metrics.Keys.Set(float64(s.tree.Len()))
	s.metrics.Height.Set(float64(s.tree.Height()))
}

// maybeRebalance rebalances the tree after a mutation if configured to and
// the tree is no longer balanced.  The caller must hold s.mu.
func (s *indexServer) maybeRebalance() {
	if s.autoRebalance && !s.tree.IsBalanced() {
		glog.V(1).Infof("rebalancing %d keys", s.tree.Len())
		s.tree.Rebalance()
		s.metrics.Rebalances.Inc()
	}
}

// decode converts the given number values to int64 keys.
func decode(values []*structpb.Value) ([]int64, error) {
	for i, v := range values {
		if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
			return nil, fmt.Errorf("key at index %d is not a number", i)
		}
		if f := v.GetNumberValue(); f != math.Trunc(f) || maxExactKey < math.Abs(f) {
			return nil, fmt.Errorf("key %v at index %d is not an exact integer", f, i)
		}
	}
	return lo.Map(values, func(v *structpb.Value, _ int) int64 {
		return int64(v.GetNumberValue())
	}), nil
}

// encode converts the given keys to a list of number values.
func encode(keys []int64) *structpb.ListValue {
	return &structpb.ListValue{
		Values: lo.Map(keys, func(key int64, _ int) *structpb.Value {
			return structpb.NewNumberValue(float64(key))
		}),
	}
}

// Build replaces the tree with one built from the given keys.
func (s *indexServer) Build(ctx context.Context, in *structpb.ListValue) (*empty.Empty, error) {
	glog.Infof("Build called with %d keys", len(in.GetValues()))

	keys, err := decode(in.GetValues())
	if err == nil {
		var tree *bst.Tree[int64]
		if tree, err = bst.Build(keys); err == nil {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.tree = tree
			s.observe()
			s.metrics.count("build", resultOK)
			return new(empty.Empty), nil
		}
	}

	s.metrics.count("build", resultInvalid)
	return nil, status.Error(codes.InvalidArgument, err.Error())
}

// Find reports whether the given key is in the tree, and if so its depth and
// the height of its subtree.
func (s *indexServer) Find(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	glog.V(1).Infof("Find called with key: %d", in.GetValue())

	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]*structpb.Value{
		"found": structpb.NewBoolValue(false),
	}
	n, ok := s.tree.Find(in.GetValue())
	if ok {
		fields["found"] = structpb.NewBoolValue(true)
		fields["key"] = structpb.NewNumberValue(float64(n.Key()))
		fields["depth"] = structpb.NewNumberValue(float64(n.Depth()))
		fields["height"] = structpb.NewNumberValue(float64(n.Height()))
	}
	s.metrics.count("find", result(ok))

	return &structpb.Struct{Fields: fields}, nil
}

// Insert adds the given key to the tree.  Inserting a key that is already in
// the tree has no effect.
func (s *indexServer) Insert(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	glog.V(1).Infof("Insert called with key: %d", in.GetValue())

	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := s.tree.Insert(in.GetValue())
	if inserted {
		s.maybeRebalance()
		s.observe()
	}
	s.metrics.count("insert", result(inserted))

	return wrapperspb.Bool(inserted), nil
}

// Remove removes the given key from the tree.  Removing a key that is not in
// the tree has no effect.
func (s *indexServer) Remove(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	glog.V(1).Infof("Remove called with key: %d", in.GetValue())

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.tree.Remove(in.GetValue())
	if removed {
		s.maybeRebalance()
		s.observe()
	}
	s.metrics.count("remove", result(removed))

	return wrapperspb.Bool(removed), nil
}

// Traverse returns the keys of the tree in the named order.
func (s *indexServer) Traverse(ctx context.Context, in *wrapperspb.StringValue) (*structpb.ListValue, error) {
	glog.V(1).Infof("Traverse called with order: %q", in.GetValue())

	order := bst.InOrder
	if in.GetValue() != "" {
		var err error
		if order, err = bst.ParseOrder(in.GetValue()); err != nil {
			s.metrics.count("traverse", resultInvalid)
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.count("traverse", resultOK)
	return encode(s.tree.Keys(order)), nil
}

// Stats reports the size, height and balance of the tree along with its
// smallest and largest keys.
func (s *indexServer) Stats(ctx context.Context, in *empty.Empty) (*structpb.Struct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := map[string]*structpb.Value{
		"len":      structpb.NewNumberValue(float64(s.tree.Len())),
		"height":   structpb.NewNumberValue(float64(s.tree.Height())),
		"balanced": structpb.NewBoolValue(s.tree.IsBalanced()),
	}
	if min, ok := s.tree.Min(); ok {
		fields["min"] = structpb.NewNumberValue(float64(min))
	}
	if max, ok := s.tree.Max(); ok {
		fields["max"] = structpb.NewNumberValue(float64(max))
	}
	s.metrics.count("stats", resultOK)

	return &structpb.Struct{Fields: fields}, nil
}

// Rebalance rebuilds the tree into a height-minimal one.
func (s *indexServer) Rebalance(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Info("Rebalance called")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.Rebalance()
	s.metrics.Rebalances.Inc()
	s.observe()
	s.metrics.count("rebalance", resultOK)

	return new(empty.Empty), nil
}

// Render returns an ASCII graphic representation of the tree.
func (s *indexServer) Render(ctx context.Context, in *empty.Empty) (*wrapperspb.StringValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.count("render", resultOK)
	return wrapperspb.String(s.tree.String()), nil
}

// Finalize clears the tree and notifies the main goroutine that the server
// should stop.
func (s *indexServer) Finalize(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Info("Finalize called")
	defer glog.Flush()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.Clear()
	s.observe()
	s.metrics.count("finalize", resultOK)
	s.finalize.Do(func() {
		signal.Stop(s.done)
		close(s.done)
	})

	return new(empty.Empty), nil
}
