// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// pairgen generates a pairwise (all-pairs) test suite: every combination of values
// of every two parameters is exercised by at least one test case.
//
// Parameters come from -param flags, a -params file, or are entered interactively:
//
//	pairgen -param os=linux,darwin,windows -param arch=amd64,arm64 -param race=on,off
//	pairgen -params matrix.yaml -o suite.csv
//	pairgen -params matrix.toml -o suite.json.xz -verify -stats
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/pairgen/pkg/log"
	"github.com/google/pairgen/pkg/pairwise"
	"github.com/google/pairgen/pkg/params"
	"github.com/google/pairgen/pkg/render"
	"github.com/google/pairgen/pkg/stat"
	"github.com/google/pairgen/pkg/suite"
	"github.com/google/pairgen/pkg/tool"
)

var errNoParameters = errors.New("no parameters entered")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.Is(err, errNoParameters):
		fmt.Println("No parameters entered. Exiting.")
		os.Exit(1)
	default:
		tool.Fail(err)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pairgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var flagParam tool.MultiFlag
	fs.Var(&flagParam, "param", "parameter as name=value1,value2,... (can be repeated)")
	var (
		flagParams = fs.String("params", "", "load parameters from a .json, .yaml, .yml or .toml file")
		flagOutput = fs.String("output", "", "write the suite to this file instead of stdout (.xz suffix compresses)")
		flagFormat = fs.String("format", "", "output format: csv, text, json or yaml "+
			"(default: from the -output extension, csv otherwise)")
		flagOrder  = fs.String("order", "size", "parameter visiting order: size or declared")
		flagPolicy = fs.String("policy", "lookahead", "value scoring policy: lookahead or assigned")
		flagVerify = fs.Bool("verify", false, "check that the suite covers every pair")
		flagStats  = fs.Bool("stats", false, "print generation statistics to stderr")
	)
	fs.StringVar(flagOutput, "o", "", "shorthand for -output")
	stop, err := tool.Init(fs, args)
	if err != nil {
		return err
	}
	defer stop()
	if fs.NArg() != 0 {
		return fmt.Errorf("unexpected arguments: %q", fs.Args())
	}

	var opts pairwise.Options
	if opts.Order, err = pairwise.ParseOrder(*flagOrder); err != nil {
		return err
	}
	if opts.Policy, err = pairwise.ParsePolicy(*flagPolicy); err != nil {
		return err
	}
	format, err := outputFormat(*flagFormat, *flagOutput)
	if err != nil {
		return err
	}
	parameters, err := loadParameters(*flagParams, flagParam, stdin, stdout)
	if err != nil {
		return err
	}
	if len(parameters) == 0 {
		return errNoParameters
	}
	cases, err := suite.Generate(context.Background(), parameters, opts)
	if err != nil {
		return err
	}
	if *flagVerify {
		if err := verify(parameters, cases); err != nil {
			return err
		}
	}
	names := suite.Names(parameters)
	if *flagOutput != "" {
		if err := render.WriteFile(*flagOutput, format, names, cases); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %v test cases to '%v'.\n", len(cases), *flagOutput)
	} else if err := render.Write(stdout, format, names, cases); err != nil {
		return err
	}
	if *flagStats {
		for _, ui := range stat.Collect(stat.Simple) {
			fmt.Fprintf(stderr, "%-24v%v\n", ui.Name+":", ui.Value)
		}
	}
	return nil
}

func outputFormat(name, output string) (render.Format, error) {
	if name == "" && output != "" {
		return render.FormatForFile(output), nil
	}
	return render.ParseFormat(name)
}

// loadParameters merges the parameters file with -param flags, flags win on name clashes.
// Without either, parameters are collected interactively.
func loadParameters(file string, args []string, stdin io.Reader, stdout io.Writer) ([]params.Parameter, error) {
	if file == "" && len(args) == 0 {
		return params.Collect(stdin, stdout)
	}
	var res []params.Parameter
	if file != "" {
		var err error
		if res, err = params.LoadFile(file); err != nil {
			return nil, err
		}
	}
	fromArgs, err := params.ParseArgs(args)
	if err != nil {
		return nil, err
	}
	return params.Merge(res, fromArgs...), nil
}

func verify(parameters []params.Parameter, cases []pairwise.Case[string]) error {
	missing, err := pairwise.Missing(parameters, cases)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	if len(missing) != 0 {
		var lines []string
		for i, pr := range missing {
			if i == 10 {
				lines = append(lines, fmt.Sprintf("... and %v more", len(missing)-i))
				break
			}
			lines = append(lines, pr.String())
		}
		return fmt.Errorf("verification failed: %v pairs are not covered:\n%v",
			len(missing), strings.Join(lines, "\n"))
	}
	total, err := pairwise.UniverseSize(parameters)
	if err != nil {
		return err
	}
	log.Logf(0, "verified: all %v pairs are covered by %v test cases", total, len(cases))
	return nil
}
