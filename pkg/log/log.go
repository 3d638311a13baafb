// Copyright 2016 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package log provides functionality similar to standard log package with some extensions:
//   - verbosity levels, set once by the tool that owns the process
//   - ability to cache recent output in memory (served by pairserver at /log)
package log

import (
	"bytes"
	"fmt"
	golog "log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	verbosity    atomic.Int32
	mu           sync.Mutex
	cacheMem     int
	cacheMaxMem  int
	cachePos     int
	cacheEntries []string
	prependTime  = true // for testing
)

// SetVerbosity sets the maximum level of messages that are printed.
// Level 0 messages are always printed.
func SetVerbosity(v int) {
	verbosity.Store(int32(v))
}

func V(v int) bool {
	return v <= int(verbosity.Load())
}

// EnableLogCaching enables in memory caching of log output.
// Caches up to maxLines, but no more than maxMem bytes.
// Cached output can later be queried with CachedLogOutput.
func EnableLogCaching(maxLines, maxMem int) {
	mu.Lock()
	defer mu.Unlock()
	if cacheEntries != nil {
		Fatalf("log caching is already enabled")
	}
	if maxLines < 1 || maxMem < 1 {
		panic("invalid maxLines/maxMem")
	}
	cacheMaxMem = maxMem
	cacheEntries = make([]string, maxLines)
}

// CachedLogOutput returns the cached log output, oldest line first.
func CachedLogOutput() string {
	mu.Lock()
	defer mu.Unlock()
	buf := new(bytes.Buffer)
	for i := range cacheEntries {
		pos := (cachePos + i) % len(cacheEntries)
		if cacheEntries[pos] == "" {
			continue
		}
		buf.WriteString(cacheEntries[pos])
		buf.Write([]byte{'\n'})
	}
	return buf.String()
}

func Logf(v int, msg string, args ...interface{}) {
	if v <= 1 {
		cache(fmt.Sprintf(msg, args...))
	}
	if V(v) {
		golog.Printf(msg, args...)
	}
}

func Errorf(msg string, args ...interface{}) {
	Logf(0, "ERROR: "+msg, args...)
}

func cache(line string) {
	mu.Lock()
	defer mu.Unlock()
	if cacheEntries == nil {
		return
	}
	if prependTime {
		line = time.Now().Format("2006/01/02 15:04:05 ") + line
	}
	cacheMem -= len(cacheEntries[cachePos])
	cacheEntries[cachePos] = line
	cacheMem += len(line)
	cachePos = (cachePos + 1) % len(cacheEntries)
	// Evict the oldest entries until we fit into the memory limit,
	// but always keep the line we've just added.
	for i := 0; i < len(cacheEntries)-1 && cacheMem > cacheMaxMem; i++ {
		pos := (cachePos + i) % len(cacheEntries)
		cacheMem -= len(cacheEntries[pos])
		cacheEntries[pos] = ""
	}
	if cacheMem < 0 {
		panic("log cache size underflow")
	}
}

func Fatal(err error) {
	golog.Fatal(err)
}

func Fatalf(msg string, args ...interface{}) {
	golog.Fatalf(msg, args...)
}
