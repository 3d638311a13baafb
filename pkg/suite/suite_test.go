// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package suite

import (
	"context"
	"testing"

	"github.com/google/pairgen/pkg/pairwise"
	"github.com/google/pairgen/pkg/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binary = []params.Parameter{
	{Name: "a", Values: []string{"0", "1"}},
	{Name: "b", Values: []string{"0", "1"}},
	{Name: "c", Values: []string{"0", "1"}},
}

func TestGenerate(t *testing.T) {
	suites, cases, pairs := statSuites.Val(), statCases.Val(), statPairs.Val()
	sizes := casesPerSuite.Count()
	var progress []pairwise.Progress
	res, err := Generate(context.Background(), binary, pairwise.Options{
		Progress: func(p pairwise.Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)
	assert.Len(t, res, 4)
	assert.Len(t, progress, 4)
	assert.Equal(t, suites+1, statSuites.Val())
	assert.Equal(t, cases+4, statCases.Val())
	assert.Equal(t, pairs+12, statPairs.Val())
	assert.NotZero(t, statCovered.Val())
	assert.Equal(t, sizes+1, casesPerSuite.Count())
	assert.GreaterOrEqual(t, casesPerSuite.Max(), 4)
	assert.NotZero(t, statCasesPerSuite.Val())
}

func TestGenerateFailures(t *testing.T) {
	stalls, invalid, suites := statStalls.Val(), statInvalid.Val(), statSuites.Val()

	_, err := Generate(context.Background(), binary, pairwise.Options{Policy: pairwise.PolicyAssigned})
	assert.ErrorIs(t, err, pairwise.ErrCoverageStall)
	assert.Equal(t, stalls+1, statStalls.Val())

	_, err = Generate(context.Background(), []params.Parameter{{Name: "a"}, {Name: "b", Values: []string{"x"}}},
		pairwise.Options{})
	assert.ErrorIs(t, err, pairwise.ErrInvalidInput)
	assert.Equal(t, invalid+1, statInvalid.Val())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Generate(ctx, binary, pairwise.Options{})
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, suites, statSuites.Val())
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Names(binary))
	assert.Empty(t, Names(nil))
}
