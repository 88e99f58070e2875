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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// operation results
const (
	resultOK      = "ok"
	resultNoop    = "noop"
	resultInvalid = "invalid"
)

// Metrics holds the Prometheus collectors of the index server.
type Metrics struct {
	Operations *prometheus.CounterVec
	Keys       prometheus.Gauge
	Height     prometheus.Gauge
	Rebalances prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.  A nil
// registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bst_index_operations_total",
			Help: "Number of index operations by operation and result.",
		}, []string{"operation", "result"}),
		Keys: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bst_index_keys",
			Help: "Number of keys in the tree.",
		}),
		Height: factory.NewGauge(prometheus.GaugeOpts{
			Name: "bst_index_height",
			Help: "Height of the tree.",
		}),
		Rebalances: factory.NewCounter(prometheus.CounterOpts{
			Name: "bst_index_rebalances_total",
			Help: "Number of times the tree was rebuilt, on request or automatically.",
		}),
	}
}

// count records an operation with the given result.
func (m *Metrics) count(operation, result string) {
	m.Operations.WithLabelValues(operation, result).Inc()
}

// result maps the outcome of a mutation to its result label.
func result(changed bool) string {
	if changed {
		return resultOK
	}
	return resultNoop
}
