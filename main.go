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

// Package main implements the index server.  The server holds a single
// binary search tree, built from the configured keys, and runs until it is
// interrupted or a client calls Finalize.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/9rum/bst/index"
	"github.com/9rum/bst/internal/config"
	"github.com/golang/glog"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	port := flag.Int("p", config.DefaultPort, "The server port")
	path := flag.String("config", "", "The YAML configuration file")
	metricsAddr := flag.String("metrics", config.DefaultMetricsAddr, "The metrics listen address, empty to disable")
	flag.Parse()
	defer glog.Flush()

	cfg := config.Default()
	if *path != "" {
		var err error
		if cfg, err = config.Load(*path); err != nil {
			glog.Fatalf("failed to load config: %v", err)
		}
	}

	// flags set on the command line take precedence over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = *port
		case "metrics":
			cfg.MetricsAddr = *metricsAddr
		}
	})
	if err := cfg.Validate(); err != nil {
		glog.Fatalf("invalid config: %v", err)
	}

	if err := serve(cfg); err != nil {
		glog.Fatalf("failed to serve: %v", err)
	}
}

func serve(cfg *config.Config) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	server, err := newServer(done, cfg, index.NewMetrics(registry))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		glog.Infof("server listening at %v", lis.Addr())
		return server.Serve(lis)
	})

	var metrics *http.Server
	if cfg.MetricsAddr != "" {
		metrics = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}
		g.Go(func() error {
			glog.Infof("metrics listening at %s", cfg.MetricsAddr)
			if err := metrics.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		select {
		case <-done:
		case <-ctx.Done():
		}
		glog.Info("shutting down")
		server.GracefulStop()
		if metrics != nil {
			return metrics.Shutdown(context.Background())
		}
		return nil
	})

	return g.Wait()
}

func newServer(done chan<- os.Signal, cfg *config.Config, metrics *index.Metrics) (*grpc.Server, error) {
	srv, err := index.NewIndexServer(done, cfg, metrics)
	if err != nil {
		return nil, err
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(
				grpc_recovery.WithRecoveryHandler(func(p interface{}) error {
					glog.Errorf("recovered from panic: %v", p)
					return status.Errorf(codes.Internal, "%v", p)
				}),
			),
		),
	)
	index.RegisterIndexServer(server, srv)

	return server, nil
}
