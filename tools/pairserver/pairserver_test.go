// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/google/pairgen/pkg/server"
	"github.com/stretchr/testify/assert"
)

func TestRunStops(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.HTTP = "127.0.0.1:0"
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, run(ctx, cfg))
}

func TestRunBadAddress(t *testing.T) {
	cfg := server.DefaultConfig()
	cfg.HTTP = "127.0.0.1:-1"
	assert.Error(t, run(context.Background(), cfg))
}

func TestStatsLine(t *testing.T) {
	line := statsLine()
	assert.Contains(t, line, "requests: ")
	assert.Contains(t, line, "suites: ")
}
