// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/google/pairgen/pkg/log"
)

// installProfiling starts cpu profiling and returns a function that stops it
// and writes the heap profile. Large parameter matrices are the main use case.
func installProfiling(cpuprof, memprof string) (func(), error) {
	stopCPU := func() {}
	if cpuprof != "" {
		f, err := os.Create(cpuprof)
		if err != nil {
			return nil, fmt.Errorf("failed to create cpuprofile file: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}
	return func() {
		stopCPU()
		if memprof == "" {
			return
		}
		if err := writeHeapProfile(memprof); err != nil {
			log.Errorf("%v", err)
		}
	}, nil
}

func writeHeapProfile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create memprofile file: %w", err)
	}
	defer f.Close()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write mem profile: %w", err)
	}
	return nil
}
