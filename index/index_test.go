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

package index

import (
	"context"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/9rum/bst/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const bufSize = 1 << 20

// serve starts an index server over an in-memory connection and returns a
// client for it together with its metrics and done channel.
func serve(t *testing.T, cfg *config.Config) (IndexClient, *Metrics, <-chan os.Signal) {
	t.Helper()
	done := make(chan os.Signal, 1)
	metrics := NewMetrics(prometheus.NewRegistry())
	srv, err := NewIndexServer(done, cfg, metrics)
	require.NoError(t, err)

	lis := bufconn.Listen(bufSize)
	server := grpc.NewServer()
	RegisterIndexServer(server, srv)
	go server.Serve(lis)
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewIndexClient(conn), metrics, done
}

// keys traverses the tree in the given order.
func keys(t *testing.T, c IndexClient, order string) []int64 {
	t.Helper()
	r, err := c.Traverse(context.Background(), wrapperspb.String(order))
	require.NoError(t, err)
	return lo.Map(r.GetValues(), func(v *structpb.Value, _ int) int64 {
		return int64(v.GetNumberValue())
	})
}

// number returns the numeric field of a struct response.
func number(r *structpb.Struct, field string) float64 {
	return r.GetFields()[field].GetNumberValue()
}

func TestIndexServer(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = []int64{3, 6, 7, 9, 10, 13, 14, 20}
	c, metrics, _ := serve(t, cfg)
	ctx := context.Background()

	r, err := c.Find(ctx, wrapperspb.Int64(14))
	require.NoError(t, err)
	require.True(t, r.GetFields()["found"].GetBoolValue())
	require.Equal(t, 14., number(r, "key"))
	require.Equal(t, 2., number(r, "depth"))
	require.Equal(t, 2., number(r, "height"))

	r, err = c.Find(ctx, wrapperspb.Int64(15))
	require.NoError(t, err)
	require.False(t, r.GetFields()["found"].GetBoolValue())
	require.NotContains(t, r.GetFields(), "key")

	inserted, err := c.Insert(ctx, wrapperspb.Int64(90))
	require.NoError(t, err)
	require.True(t, inserted.GetValue())
	inserted, err = c.Insert(ctx, wrapperspb.Int64(90))
	require.NoError(t, err)
	require.False(t, inserted.GetValue())

	stats, err := c.Stats(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Equal(t, 9., number(stats, "len"))
	require.Equal(t, 5., number(stats, "height"))
	require.Equal(t, 3., number(stats, "min"))
	require.Equal(t, 90., number(stats, "max"))
	require.False(t, stats.GetFields()["balanced"].GetBoolValue())

	require.Equal(t, []int64{3, 6, 7, 9, 10, 13, 14, 20, 90}, keys(t, c, ""))
	require.Equal(t, []int64{9, 6, 13, 3, 7, 10, 14, 20, 90}, keys(t, c, "levelorder"))

	_, err = c.Rebalance(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	stats, err = c.Stats(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.True(t, stats.GetFields()["balanced"].GetBoolValue())
	require.Equal(t, 4., number(stats, "height"))

	removed, err := c.Remove(ctx, wrapperspb.Int64(20))
	require.NoError(t, err)
	require.True(t, removed.GetValue())
	removed, err = c.Remove(ctx, wrapperspb.Int64(20))
	require.NoError(t, err)
	require.False(t, removed.GetValue())
	require.Equal(t, []int64{3, 6, 7, 9, 10, 13, 14, 90}, keys(t, c, "inorder"))

	rendered, err := c.Render(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSuffix(rendered.GetValue(), "\n"), "\n"), 8)
	require.Contains(t, rendered.GetValue(), "└── ")

	require.Equal(t, 8., testutil.ToFloat64(metrics.Keys))
	require.Equal(t, 1., testutil.ToFloat64(metrics.Rebalances))
	require.Equal(t, 1., testutil.ToFloat64(metrics.Operations.WithLabelValues("insert", resultOK)))
	require.Equal(t, 1., testutil.ToFloat64(metrics.Operations.WithLabelValues("insert", resultNoop)))
	require.Equal(t, 1., testutil.ToFloat64(metrics.Operations.WithLabelValues("find", resultNoop)))
}

func TestBuildInvalid(t *testing.T) {
	c, metrics, _ := serve(t, config.Default())
	ctx := context.Background()

	for _, values := range [][]interface{}{
		{2, 1},
		{1, 1},
		{1.5},
		{"one"},
		{float64(1 << 60)},
	} {
		in, err := structpb.NewList(values)
		require.NoError(t, err)
		_, err = c.Build(ctx, in)
		require.Equal(t, codes.InvalidArgument, status.Code(err), "build %v", values)
	}
	require.Equal(t, 5., testutil.ToFloat64(metrics.Operations.WithLabelValues("build", resultInvalid)))

	in, err := structpb.NewList([]interface{}{1, 2, 3})
	require.NoError(t, err)
	_, err = c.Build(ctx, in)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 1, 3}, keys(t, c, "preorder"))
	require.Equal(t, 3., testutil.ToFloat64(metrics.Keys))
}

func TestTraverseUnknownOrder(t *testing.T) {
	c, _, _ := serve(t, config.Default())
	_, err := c.Traverse(context.Background(), wrapperspb.String("sideways"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestAutoRebalance(t *testing.T) {
	cfg := config.Default()
	cfg.AutoRebalance = true
	c, metrics, _ := serve(t, cfg)
	ctx := context.Background()

	const size = 100
	for key := int64(0); key < size; key++ {
		_, err := c.Insert(ctx, wrapperspb.Int64(key))
		require.NoError(t, err)
	}
	stats, err := c.Stats(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.True(t, stats.GetFields()["balanced"].GetBoolValue())
	require.Equal(t, float64(size), number(stats, "len"))
	require.Less(t, 0., testutil.ToFloat64(metrics.Rebalances))
	require.Equal(t, float64(size), testutil.ToFloat64(metrics.Keys))
}

func TestConcurrentInserts(t *testing.T) {
	c, _, _ := serve(t, config.Default())
	const (
		workers = 8
		stride  = 64
	)

	var g errgroup.Group
	for worker := 0; worker < workers; worker++ {
		worker := worker
		g.Go(func() error {
			for key := worker; key < workers*stride; key += workers {
				if _, err := c.Insert(context.Background(), wrapperspb.Int64(int64(key))); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	want := make([]int64, 0, workers*stride)
	for key := 0; key < workers*stride; key++ {
		want = append(want, int64(key))
	}
	require.Equal(t, want, keys(t, c, "inorder"))
}

func TestFinalize(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = []int64{1, 2, 3}
	c, metrics, done := serve(t, cfg)
	ctx := context.Background()

	_, err := c.Finalize(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	_, ok := <-done
	require.False(t, ok, "done is not closed")
	require.Equal(t, 0., testutil.ToFloat64(metrics.Keys))

	// a second call must not close done twice
	_, err = c.Finalize(ctx, new(emptypb.Empty))
	require.NoError(t, err)
}

func TestNewIndexServerInvalidKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = []int64{2, 1}
	_, err := NewIndexServer(make(chan os.Signal), cfg, nil)
	require.Error(t, err)
}
