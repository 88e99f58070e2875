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

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// write stores the given contents in a temporary config file.
func write(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bst.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(write(t, `
port: 6000
auto_rebalance: true
keys: [3, 6, 7, 9]
`))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Port:          6000,
		MetricsAddr:   DefaultMetricsAddr,
		AutoRebalance: true,
		Keys:          []int64{3, 6, 7, 9},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("mismatch:\n got: %+v\nwant: %+v", cfg, want)
	}
}

func TestLoadDisablesMetrics(t *testing.T) {
	cfg, err := Load(write(t, `metrics_addr: ""`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MetricsAddr != "" || cfg.Port != DefaultPort {
		t.Fatalf("got %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	for name, contents := range map[string]string{
		"unsorted keys": "keys: [3, 1]",
		"duplicate key": "keys: [1, 1]",
		"port":          "port: 70000",
		"syntax":        "keys: [1, 2",
		"type":          "keys: one",
	} {
		if _, err := Load(write(t, contents)); err == nil {
			t.Fatalf("%s: loaded invalid config", name)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("loaded missing config")
	}
}
