// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package pairwise

import (
	"context"
	"fmt"
	"sort"
)

// scorer rates value v of parameter p for a partially built case.
// row[q] is the value index assigned to parameter q, or -1 if q is not assigned yet.
type scorer interface {
	score(t *tracker, row []int, p, v int) int
}

type assignedScorer struct{}

func (assignedScorer) score(t *tracker, row []int, p, v int) int {
	score := 0
	for q, w := range row {
		if q != p && w >= 0 && t.has(makePair(p, v, q, w)) {
			score++
		}
	}
	return score
}

type lookaheadScorer struct{}

func (lookaheadScorer) score(t *tracker, row []int, p, v int) int {
	score := 0
	for q, w := range row {
		switch {
		case q == p:
		case w >= 0:
			if t.has(makePair(p, v, q, w)) {
				score++
			}
		default:
			score += t.pending[p][v][q]
		}
	}
	return score
}

func (policy Policy) scorer() (scorer, error) {
	switch policy {
	case PolicyLookahead:
		return lookaheadScorer{}, nil
	case PolicyAssigned:
		return assignedScorer{}, nil
	}
	return nil, fmt.Errorf("unknown scoring policy %v", policy)
}

func visitOrder(sizes []int, order Order) ([]int, error) {
	res := make([]int, len(sizes))
	for i := range res {
		res[i] = i
	}
	switch order {
	case OrderDeclared:
	case OrderBySize:
		sort.SliceStable(res, func(i, j int) bool {
			return sizes[res[i]] > sizes[res[j]]
		})
	default:
		return nil, fmt.Errorf("unknown parameter order %v", order)
	}
	return res, nil
}

// generate runs the greedy loop until every pair is covered.
// Each accepted case covers at least one new pair, so there are at most t.total iterations.
func generate(ctx context.Context, t *tracker, order []int, sc scorer, progress func(Progress)) ([][]int, error) {
	var rows [][]int
	for n := 1; !t.empty(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n > t.total {
			return nil, &StallError{Case: n, Uncovered: t.len()}
		}
		row, err := selectCase(ctx, t, order, sc)
		if err != nil {
			return nil, err
		}
		newly := t.remove(casePairs(row))
		if newly == 0 {
			return nil, &StallError{Case: n, Uncovered: t.len()}
		}
		rows = append(rows, row)
		if progress != nil {
			progress(Progress{
				Case:         n,
				NewlyCovered: newly,
				Remaining:    t.len(),
				Total:        t.total,
			})
		}
	}
	return rows, nil
}

// selectCase assigns parameters in the given order, each to its best scoring value.
// Ties go to the value that comes first in the domain.
func selectCase(ctx context.Context, t *tracker, order []int, sc scorer) ([]int, error) {
	row := make([]int, len(order))
	for i := range row {
		row[i] = -1
	}
	for _, p := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		best, bestScore := 0, -1
		for v := range t.pending[p] {
			if score := sc.score(t, row, p, v); score > bestScore {
				best, bestScore = v, score
			}
		}
		row[p] = best
	}
	return row, nil
}

// casePairs returns all pairs induced by a complete case.
func casePairs(row []int) []pair {
	pairs := make([]pair, 0, len(row)*(len(row)-1)/2)
	for p1 := range row {
		for p2 := p1 + 1; p2 < len(row); p2++ {
			pairs = append(pairs, pair{p1, row[p1], p2, row[p2]})
		}
	}
	return pairs
}
