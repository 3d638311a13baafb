// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package suite runs pairwise generation for text parameters on behalf of the tools
// and records generation metrics.
package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/pairgen/pkg/log"
	"github.com/google/pairgen/pkg/pairwise"
	"github.com/google/pairgen/pkg/params"
	"github.com/google/pairgen/pkg/stat"
)

var (
	statSuites = stat.New("suites", "Number of generated test suites",
		stat.Simple, stat.Prometheus("pairgen_suites"))
	statCases = stat.New("cases", "Number of generated test cases",
		stat.Simple, stat.Prometheus("pairgen_cases"))
	statPairs = stat.New("pairs", "Number of covered parameter value pairs",
		stat.Simple, stat.Prometheus("pairgen_pairs"))
	statStalls = stat.New("stalls", "Generations aborted because a test case covered no new pairs",
		stat.Prometheus("pairgen_stalls"))
	statInvalid = stat.New("invalid inputs", "Generations rejected because of invalid parameters",
		stat.Prometheus("pairgen_invalid_inputs"))
	statCovered = stat.New("covered per case", "Newly covered pairs per test case",
		stat.Simple, stat.Distribution{})

	generateTime  stat.AverageValue[time.Duration]
	statTimeTaken = stat.New("generate time", "Average time to generate a suite", stat.Simple,
		func() int { return int(generateTime.Value().Microseconds()) },
		func(v int) string { return fmt.Sprintf("%vus", v) })

	casesPerSuite     stat.AverageValue[int]
	statCasesPerSuite = stat.New("cases per suite", "Average number of test cases in a generated suite",
		stat.Simple, func() int { return casesPerSuite.Value() },
		func(v int) string { return fmt.Sprintf("%v (max %v)", v, casesPerSuite.Max()) })
)

// Generate runs pairwise.GenerateContext and accounts the result in metrics.
// opts.Progress, if set, is still called for every case.
func Generate(ctx context.Context, parameters []params.Parameter, opts pairwise.Options) (
	[]pairwise.Case[string], error) {
	start := time.Now()
	observer := opts.Progress
	covered := 0
	opts.Progress = func(p pairwise.Progress) {
		log.Logf(2, "case %v: %v new pairs, %v/%v remaining", p.Case, p.NewlyCovered, p.Remaining, p.Total)
		statCovered.Add(p.NewlyCovered)
		covered += p.NewlyCovered
		if observer != nil {
			observer(p)
		}
	}
	cases, err := pairwise.GenerateContext(ctx, parameters, opts)
	if err != nil {
		switch {
		case errors.Is(err, pairwise.ErrInvalidInput):
			statInvalid.Add(1)
		case errors.Is(err, pairwise.ErrCoverageStall):
			statStalls.Add(1)
		}
		log.Logf(1, "generation of %v parameters failed: %v", len(parameters), err)
		return nil, err
	}
	elapsed := time.Since(start)
	generateTime.Save(elapsed)
	casesPerSuite.Save(len(cases))
	statSuites.Add(1)
	statCases.Add(len(cases))
	statPairs.Add(covered)
	log.Logf(1, "generated %v cases for %v parameters covering %v pairs in %v (order %v, policy %v)",
		len(cases), len(parameters), covered, elapsed, opts.Order, opts.Policy)
	return cases, nil
}

// Names returns parameter names in declaration order.
func Names(parameters []params.Parameter) []string {
	names := make([]string, len(parameters))
	for i, param := range parameters {
		names[i] = param.Name
	}
	return names
}
