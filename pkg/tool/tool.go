// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package tool contains various helper utilitites useful for implementation of command line tools.
package tool

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/pairgen/pkg/log"
)

// Init registers the flags common to all tools (-vv, -cpuprofile, -memprofile) in fs,
// parses args and applies them. The returned function must be called before the tool exits.
func Init(fs *flag.FlagSet, args []string) (func(), error) {
	verbosity := fs.Int("vv", 0, "verbosity")
	cpuprof := fs.String("cpuprofile", "", "write CPU profile to this file")
	memprof := fs.String("memprofile", "", "write memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	log.SetVerbosity(*verbosity)
	return installProfiling(*cpuprof, *memprof)
}

func Failf(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func Fail(err error) {
	Failf("%v", err)
}
