// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lindb/common/pkg/ltoml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/lindb/beehive"
	"github.com/lindb/beehive/config"
)

const (
	defaultCfgFile = "./beehive.toml"
	defaultListen  = ":9700"
)

var (
	listen  string
	workers int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "start a worker pool and serve its stats over HTTP",
	RunE:  serve,
}

func init() {
	runCmd.PersistentFlags().StringVar(&listen, "listen", defaultListen,
		"address to serve /metrics and /debug/pool on")
	runCmd.PersistentFlags().IntVar(&workers, "workers", 0,
		"worker count, 0 substitutes the host's processor count")
}

// initConfigCmd writes the default pool config to disk.
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "create a new default pool config",
	RunE: func(_ *cobra.Command, _ []string) error {
		path := cfg
		if path == "" {
			path = defaultCfgFile
		}
		return ltoml.WriteConfig(path, config.NewDefaultPool())
	},
}

func serve(_ *cobra.Command, _ []string) error {
	undo, err := maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	if err != nil {
		return fmt.Errorf("set GOMAXPROCS: %w", err)
	}
	defer undo()

	poolCfg := config.NewDefaultPool()
	if workers > 0 {
		poolCfg.Workers = workers
	}

	hive := beehive.NewWithOptions(poolCfg.Workers, time.Duration(poolCfg.WaitGranular), poolCfg.PinToCPU)
	defer hive.Close()

	if poolCfg.DumpInterval > 0 {
		go dumpPeriodically(hive, time.Duration(poolCfg.DumpInterval))
	}

	prometheus.MustRegister(beehive.NewCollector(hive))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pool", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(hive.Stats())
	})

	server := &http.Server{Addr: listen, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func dumpPeriodically(hive *beehive.Beehive, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		hive.Dump()
	}
}
