// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package pairwise

import (
	"fmt"
)

// Assignment is one (parameter, value) half of a Pair.
type Assignment[V comparable] struct {
	Name  string
	Value V
}

// Pair is a combination of values of two distinct parameters.
// A comes before B in the parameter declaration order.
type Pair[V comparable] struct {
	A, B Assignment[V]
}

func (pr Pair[V]) String() string {
	return fmt.Sprintf("%v=%v, %v=%v", pr.A.Name, pr.A.Value, pr.B.Name, pr.B.Value)
}

// Missing returns the pairs of params that none of the cases covers,
// in parameter declaration and domain order.
// Cases that omit a parameter or assign a value outside of its domain are reported as errors.
func Missing[V comparable](params []Parameter[V], cases []Case[V]) ([]Pair[V], error) {
	doms, err := normalize(params)
	if err != nil {
		return nil, err
	}
	index := make([]map[V]int, len(doms))
	sizes := make([]int, len(doms))
	for p, dom := range doms {
		sizes[p] = len(dom.Values)
		index[p] = make(map[V]int, len(dom.Values))
		for v, val := range dom.Values {
			index[p][val] = v
		}
	}
	covered := make(map[pair]bool)
	row := make([]int, len(doms))
	for i, c := range cases {
		if len(c) != len(doms) {
			return nil, fmt.Errorf("case %v assigns %v parameters, want %v", i, len(c), len(doms))
		}
		for p, dom := range doms {
			val, ok := c[dom.Name]
			if !ok {
				return nil, fmt.Errorf("case %v does not assign parameter %q", i, dom.Name)
			}
			v, ok := index[p][val]
			if !ok {
				return nil, fmt.Errorf("case %v assigns %v to parameter %q outside of its domain",
					i, val, dom.Name)
			}
			row[p] = v
		}
		for _, pr := range casePairs(row) {
			covered[pr] = true
		}
	}
	var missing []Pair[V]
	forEachPair(sizes, func(pr pair) {
		if covered[pr] {
			return
		}
		missing = append(missing, Pair[V]{
			A: Assignment[V]{doms[pr.p1].Name, doms[pr.p1].Values[pr.v1]},
			B: Assignment[V]{doms[pr.p2].Name, doms[pr.p2].Values[pr.v2]},
		})
	})
	return missing, nil
}
