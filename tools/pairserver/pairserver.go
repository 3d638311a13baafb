// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// pairserver serves pairwise test suite generation over HTTP:
//
//	curl -d '{"parameters": [{"name": "os", "values": ["linux", "darwin"]},
//		{"name": "arch", "values": ["amd64", "arm64"]}], "format": "csv"}' localhost:56741/generate
//
// It also serves /stats, /log and Prometheus /metrics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/pairgen/pkg/log"
	"github.com/google/pairgen/pkg/osutil"
	"github.com/google/pairgen/pkg/server"
	"github.com/google/pairgen/pkg/stat"
	"github.com/google/pairgen/pkg/tool"
	"golang.org/x/sync/errgroup"
)

func main() {
	fs := flag.NewFlagSet("pairserver", flag.ExitOnError)
	var (
		flagConfig = fs.String("config", "", "configuration file (optional)")
		flagHTTP   = fs.String("http", "", "override the HTTP address from the config")
	)
	stop, err := tool.Init(fs, os.Args[1:])
	if err != nil {
		tool.Fail(err)
	}
	defer stop()
	log.EnableLogCaching(1000, 1<<20)
	cfg, err := server.LoadConfig(*flagConfig)
	if err != nil {
		log.Fatal(err)
	}
	if *flagHTTP != "" {
		cfg.HTTP = *flagHTTP
	}
	ctx, cancel := osutil.HandleInterrupts(context.Background())
	defer cancel()
	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *server.Config) error {
	eg, ctx := errgroup.WithContext(ctx)
	serv := server.New(cfg)
	eg.Go(func() error {
		return serv.Serve(ctx)
	})
	eg.Go(func() error {
		logStats(ctx, time.Minute)
		return nil
	})
	return eg.Wait()
}

// logStats periodically logs a one line summary of the metrics until ctx is done.
func logStats(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Logf(0, "shutting down")
			return
		case <-ticker.C:
			log.Logf(0, "%v", statsLine())
		}
	}
}

func statsLine() string {
	var parts []string
	for _, ui := range stat.Collect(stat.Simple) {
		parts = append(parts, fmt.Sprintf("%v: %v", ui.Name, ui.Value))
	}
	return strings.Join(parts, ", ")
}
