// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package pairwise

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binaryParams() []Parameter[int] {
	return []Parameter[int]{
		{Name: "a", Values: []int{0, 1}},
		{Name: "b", Values: []int{0, 1}},
		{Name: "c", Values: []int{0, 1}},
	}
}

func TestGenerateBinary(t *testing.T) {
	params := binaryParams()
	cases, err := Generate(params)
	require.NoError(t, err)
	// Other covers are possible, but keep the current output so that
	// unexpected changes in the selector are noticed.
	assert.Equal(t, []Case[int]{
		{"a": 0, "b": 0, "c": 0},
		{"a": 1, "b": 1, "c": 0},
		{"a": 0, "b": 1, "c": 1},
		{"a": 1, "b": 0, "c": 1},
	}, cases)
	missing, err := Missing(params, cases)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestGenerateTwoParameters(t *testing.T) {
	params := []Parameter[string]{
		{Name: "x", Values: []string{"1", "2", "3"}},
		{Name: "y", Values: []string{"A", "B"}},
	}
	total, err := UniverseSize(params)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	cases, err := Generate(params)
	require.NoError(t, err)
	// Every case of a two parameter suite covers exactly one pair.
	assert.Equal(t, []Case[string]{
		{"x": "1", "y": "A"},
		{"x": "2", "y": "A"},
		{"x": "3", "y": "A"},
		{"x": "1", "y": "B"},
		{"x": "2", "y": "B"},
		{"x": "3", "y": "B"},
	}, cases)
}

func TestGenerateDegenerate(t *testing.T) {
	cases, err := Generate[int](nil)
	assert.NoError(t, err)
	assert.Empty(t, cases)

	cases, err = Generate([]Parameter[int]{})
	assert.NoError(t, err)
	assert.Empty(t, cases)

	single, err := Generate([]Parameter[string]{{Name: "os", Values: []string{"linux", "darwin", "windows"}}})
	assert.NoError(t, err)
	assert.Equal(t, []Case[string]{
		{"os": "linux"},
		{"os": "darwin"},
		{"os": "windows"},
	}, single)

	single, err = Generate([]Parameter[string]{{Name: "os", Values: []string{"linux", "linux", "bsd"}}})
	assert.NoError(t, err)
	assert.Equal(t, []Case[string]{{"os": "linux"}, {"os": "bsd"}}, single)
}

func TestGenerateInvalidInput(t *testing.T) {
	tests := []struct {
		params []Parameter[int]
		param  string
		reason string
	}{
		{
			params: []Parameter[int]{{Name: "a", Values: []int{1}}, {Name: "b"}},
			param:  "b",
			reason: "no values",
		},
		{
			params: []Parameter[int]{{Name: "a"}},
			param:  "a",
			reason: "no values",
		},
		{
			params: []Parameter[int]{{Name: "a", Values: []int{1}}, {Name: "a", Values: []int{2}}},
			param:  "a",
			reason: "duplicate parameter name",
		},
		{
			params: []Parameter[int]{{Name: "", Values: []int{1}}},
			reason: "empty parameter name",
		},
	}
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			called := false
			cases, err := GenerateContext(context.Background(), test.params, Options{
				Progress: func(Progress) { called = true },
			})
			assert.Nil(t, cases)
			assert.False(t, called)
			require.ErrorIs(t, err, ErrInvalidInput)
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, test.param, inputErr.Param)
			assert.Equal(t, test.reason, inputErr.Reason)
		})
	}
}

func TestAssignedPolicyStalls(t *testing.T) {
	// The first visited parameter always gets its first value under the assigned policy,
	// so pairs with a=1 can never be covered.
	var progress []Progress
	cases, err := GenerateContext(context.Background(), binaryParams(), Options{
		Policy:   PolicyAssigned,
		Progress: func(p Progress) { progress = append(progress, p) },
	})
	assert.Nil(t, cases)
	require.ErrorIs(t, err, ErrCoverageStall)
	var stall *StallError
	require.ErrorAs(t, err, &stall)
	assert.Equal(t, &StallError{Case: 4, Uncovered: 5}, stall)
	assert.Equal(t, []Progress{
		{Case: 1, NewlyCovered: 3, Remaining: 9, Total: 12},
		{Case: 2, NewlyCovered: 3, Remaining: 6, Total: 12},
		{Case: 3, NewlyCovered: 1, Remaining: 5, Total: 12},
	}, progress)
}

type zeroScorer struct{}

func (zeroScorer) score(t *tracker, row []int, p, v int) int {
	return 0
}

func TestAdversarialScorerStalls(t *testing.T) {
	_, err := GenerateContext(context.Background(), binaryParams(), Options{scorer: zeroScorer{}})
	var stall *StallError
	require.ErrorAs(t, err, &stall)
	assert.Equal(t, 2, stall.Case)
	assert.Equal(t, 9, stall.Uncovered)
	assert.True(t, errors.Is(err, ErrCoverageStall))
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cases, err := GenerateContext(ctx, binaryParams(), Options{})
	assert.Nil(t, cases)
	assert.ErrorIs(t, err, context.Canceled)
}

func wideParams(n, size int) []Parameter[int] {
	var params []Parameter[int]
	for i := 0; i < n; i++ {
		param := Parameter[int]{Name: fmt.Sprint("p", i)}
		for v := 0; v < size; v++ {
			param.Values = append(param.Values, v)
		}
		params = append(params, param)
	}
	return params
}

func TestGenerateCanceledLargeInput(t *testing.T) {
	// 7 million pairs: building them all would take seconds and hundreds of megabytes.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	cases, err := GenerateContext(ctx, wideParams(8, 500), Options{})
	assert.Nil(t, cases)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	_, err = newTracker(ctx, []int{500, 500, 500})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateCanceledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := 0
	cases, err := GenerateContext(ctx, wideParams(4, 5), Options{
		Progress: func(p Progress) {
			calls++
			cancel()
		},
	})
	assert.Nil(t, cases)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestSelectCaseCanceled(t *testing.T) {
	tr, err := newTracker(context.Background(), []int{2, 2, 2})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	row, err := selectCase(ctx, tr, []int{0, 1, 2}, lookaheadScorer{})
	assert.Nil(t, row)
	assert.ErrorIs(t, err, context.Canceled)

	row, err = selectCase(context.Background(), tr, []int{0, 1, 2}, lookaheadScorer{})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, row)
}

func TestGenerateUnknownOptions(t *testing.T) {
	_, err := GenerateContext(context.Background(), binaryParams(), Options{Policy: Policy(42)})
	assert.Error(t, err)
	_, err = GenerateContext(context.Background(), binaryParams(), Options{Order: Order(42)})
	assert.Error(t, err)
}

func TestVisitOrder(t *testing.T) {
	sizes := []int{2, 3, 3, 1}
	order, err := visitOrder(sizes, OrderBySize)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 0, 3}, order)
	order, err = visitOrder(sizes, OrderDeclared)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestGenerateDeclaredOrder(t *testing.T) {
	params := []Parameter[string]{
		{Name: "browser", Values: []string{"chrome", "firefox"}},
		{Name: "os", Values: []string{"linux", "darwin", "windows"}},
		{Name: "arch", Values: []string{"amd64", "arm64"}},
	}
	for _, order := range []Order{OrderBySize, OrderDeclared} {
		for _, policy := range []Policy{PolicyLookahead, PolicyAssigned} {
			t.Run(fmt.Sprintf("%v-%v", order, policy), func(t *testing.T) {
				cases, err := GenerateContext(context.Background(), params, Options{
					Order:  order,
					Policy: policy,
				})
				if err != nil {
					// The assigned policy is allowed to stall, but nothing else.
					require.Equal(t, PolicyAssigned, policy)
					require.ErrorIs(t, err, ErrCoverageStall)
					return
				}
				missing, err := Missing(params, cases)
				require.NoError(t, err)
				assert.Empty(t, missing)
				assert.GreaterOrEqual(t, len(cases), 6)
			})
		}
	}
}

func TestUniverseSize(t *testing.T) {
	size, err := UniverseSize(binaryParams())
	require.NoError(t, err)
	assert.Equal(t, 12, size)
	size, err = UniverseSize([]Parameter[int]{
		{Name: "a", Values: []int{1, 2}},
		{Name: "b", Values: []int{1, 2, 3}},
		{Name: "c", Values: []int{1, 2, 3, 4}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2*3+2*4+3*4, size)
	size, err = UniverseSize([]Parameter[int]{{Name: "a", Values: []int{1, 2}}})
	require.NoError(t, err)
	assert.Equal(t, 0, size)
	_, err = UniverseSize([]Parameter[int]{{Name: "a"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMissing(t *testing.T) {
	params := binaryParams()
	missing, err := Missing(params, []Case[int]{
		{"a": 0, "b": 0, "c": 0},
		{"a": 1, "b": 1, "c": 0},
		{"a": 0, "b": 1, "c": 1},
	})
	require.NoError(t, err)
	want := []Pair[int]{
		{A: Assignment[int]{"a", 1}, B: Assignment[int]{"b", 0}},
		{A: Assignment[int]{"a", 1}, B: Assignment[int]{"c", 1}},
		{A: Assignment[int]{"b", 0}, B: Assignment[int]{"c", 1}},
	}
	if diff := cmp.Diff(want, missing); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, "a=1, b=0", missing[0].String())

	_, err = Missing(params, []Case[int]{{"a": 0, "b": 0}})
	assert.Error(t, err)
	_, err = Missing(params, []Case[int]{{"a": 0, "b": 0, "d": 0}})
	assert.Error(t, err)
	_, err = Missing(params, []Case[int]{{"a": 0, "b": 0, "c": 2}})
	assert.Error(t, err)
}

func TestTracker(t *testing.T) {
	tr, err := newTracker(context.Background(), []int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6, tr.total)
	assert.Equal(t, 6, tr.len())
	assert.Equal(t, 3, tr.pending[0][1][1])
	assert.Equal(t, 2, tr.pending[1][2][0])

	pr := makePair(1, 2, 0, 1)
	assert.Equal(t, pair{0, 1, 1, 2}, pr)
	assert.True(t, tr.has(pr))
	assert.Equal(t, 1, tr.remove([]pair{pr, pr}))
	assert.Equal(t, 0, tr.remove([]pair{pr}))
	assert.False(t, tr.has(pr))
	assert.Equal(t, 5, tr.len())
	assert.Equal(t, 2, tr.pending[0][1][1])
	assert.Equal(t, 1, tr.pending[1][2][0])

	tr.remove([]pair{{0, 0, 1, 0}, {0, 0, 1, 1}, {0, 0, 1, 2}, {0, 1, 1, 0}, {0, 1, 1, 1}})
	assert.True(t, tr.empty())
}

func TestParseOptions(t *testing.T) {
	for _, order := range []Order{OrderBySize, OrderDeclared} {
		got, err := ParseOrder(order.String())
		require.NoError(t, err)
		assert.Equal(t, order, got)
	}
	for _, policy := range []Policy{PolicyLookahead, PolicyAssigned} {
		got, err := ParsePolicy(policy.String())
		require.NoError(t, err)
		assert.Equal(t, policy, got)
	}
	_, err := ParseOrder("random")
	assert.Error(t, err)
	_, err = ParsePolicy("optimal")
	assert.Error(t, err)
}
