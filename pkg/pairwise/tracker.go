// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package pairwise

import (
	"context"
)

// pair is the canonical form of {(p1, v1), (p2, v2)}: parameters and values are
// indices into the normalized parameter list and domains, and p1 < p2.
type pair struct {
	p1, v1 int
	p2, v2 int
}

func makePair(pa, va, pb, vb int) pair {
	if pa > pb {
		pa, va, pb, vb = pb, vb, pa, va
	}
	return pair{pa, va, pb, vb}
}

// forEachPair enumerates the coverage universe for domains of the given sizes.
func forEachPair(sizes []int, fn func(pair)) {
	for p1 := range sizes {
		for p2 := p1 + 1; p2 < len(sizes); p2++ {
			for v1 := 0; v1 < sizes[p1]; v1++ {
				for v2 := 0; v2 < sizes[p2]; v2++ {
					fn(pair{p1, v1, p2, v2})
				}
			}
		}
	}
}

// tracker holds the pairs that are not covered yet.
// It is owned by a single generation call and is not safe for concurrent use.
type tracker struct {
	uncovered map[pair]struct{}
	total     int
	// pending[p][v][q] is the number of uncovered pairs between (p, v) and any value of q.
	pending [][][]int
}

// newTracker builds the coverage universe for domains of the given sizes.
// ctx is checked once per pair of parameters, so large universes can be abandoned mid-way.
func newTracker(ctx context.Context, sizes []int) (*tracker, error) {
	t := &tracker{
		uncovered: make(map[pair]struct{}),
		pending:   make([][][]int, len(sizes)),
	}
	for p, size := range sizes {
		t.pending[p] = make([][]int, size)
		for v := range t.pending[p] {
			t.pending[p][v] = make([]int, len(sizes))
		}
	}
	for p1 := range sizes {
		for p2 := p1 + 1; p2 < len(sizes); p2++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			for v1 := 0; v1 < sizes[p1]; v1++ {
				for v2 := 0; v2 < sizes[p2]; v2++ {
					t.uncovered[pair{p1, v1, p2, v2}] = struct{}{}
				}
				t.pending[p1][v1][p2] = sizes[p2]
			}
			for v2 := 0; v2 < sizes[p2]; v2++ {
				t.pending[p2][v2][p1] = sizes[p1]
			}
		}
	}
	t.total = len(t.uncovered)
	return t, nil
}

func (t *tracker) has(pr pair) bool {
	_, ok := t.uncovered[pr]
	return ok
}

// remove deletes pairs from the uncovered set and returns how many were actually present.
// Removing an already covered pair is a no-op.
func (t *tracker) remove(pairs []pair) int {
	removed := 0
	for _, pr := range pairs {
		if !t.has(pr) {
			continue
		}
		delete(t.uncovered, pr)
		t.pending[pr.p1][pr.v1][pr.p2]--
		t.pending[pr.p2][pr.v2][pr.p1]--
		removed++
	}
	return removed
}

func (t *tracker) len() int {
	return len(t.uncovered)
}

func (t *tracker) empty() bool {
	return len(t.uncovered) == 0
}
