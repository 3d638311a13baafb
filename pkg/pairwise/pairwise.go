// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package pairwise generates test suites with all-pairs coverage.
//
// Given a list of named parameters, each with a finite domain of values, Generate returns
// a list of test cases such that for every two distinct parameters and every combination
// of one value of each, some test case assigns exactly those two values.
// The suite is built greedily and is not guaranteed to be minimal.
package pairwise

import (
	"context"
	"fmt"
)

// Parameter is a named dimension of the test matrix.
type Parameter[V comparable] struct {
	Name   string
	Values []V
}

// Case assigns exactly one value to every parameter.
type Case[V comparable] map[string]V

// Order is the parameter visitation order used within one generated case.
type Order int

const (
	// OrderBySize visits parameters with larger domains first (ties in declaration order).
	OrderBySize Order = iota
	// OrderDeclared visits parameters in declaration order.
	OrderDeclared
)

// Policy is the value scoring policy of the greedy selector.
type Policy int

const (
	// PolicyLookahead scores a value against the already assigned parameters
	// and against all values of the parameters that are not assigned yet.
	PolicyLookahead Policy = iota
	// PolicyAssigned scores a value only against the already assigned parameters.
	// It can stall on inputs where the first visited parameter has more than one value
	// left to cover, in which case generation fails with ErrCoverageStall.
	PolicyAssigned
)

// Progress describes one accepted test case.
type Progress struct {
	Case         int // 1-based index of the case in the suite
	NewlyCovered int
	Remaining    int
	Total        int
}

type Options struct {
	Order  Order
	Policy Policy
	// Progress, if set, is called after every accepted case.
	Progress func(Progress)

	// Overrides Policy, for tests.
	scorer scorer
}

// Generate returns a pairwise-covering suite for params using the default options.
func Generate[V comparable](params []Parameter[V]) ([]Case[V], error) {
	return GenerateContext(context.Background(), params, Options{})
}

// GenerateContext is like Generate, but allows to choose the options and
// aborts with ctx.Err() if ctx is done before the suite is complete.
// No partial suite is returned on failure.
func GenerateContext[V comparable](ctx context.Context, params []Parameter[V], opts Options) ([]Case[V], error) {
	doms, err := normalize(params)
	if err != nil {
		return nil, err
	}
	switch len(doms) {
	case 0:
		return nil, nil
	case 1:
		// There are no pairs to cover, so the suite is one case per value.
		var cases []Case[V]
		for _, v := range doms[0].Values {
			cases = append(cases, Case[V]{doms[0].Name: v})
		}
		return cases, nil
	}
	sizes := make([]int, len(doms))
	for i, dom := range doms {
		sizes[i] = len(dom.Values)
	}
	sc := opts.scorer
	if sc == nil {
		if sc, err = opts.Policy.scorer(); err != nil {
			return nil, err
		}
	}
	order, err := visitOrder(sizes, opts.Order)
	if err != nil {
		return nil, err
	}
	t, err := newTracker(ctx, sizes)
	if err != nil {
		return nil, err
	}
	rows, err := generate(ctx, t, order, sc, opts.Progress)
	if err != nil {
		return nil, err
	}
	cases := make([]Case[V], len(rows))
	for i, row := range rows {
		c := make(Case[V], len(doms))
		for p, v := range row {
			c[doms[p].Name] = doms[p].Values[v]
		}
		cases[i] = c
	}
	return cases, nil
}

// UniverseSize returns the number of pairs a complete suite for params has to cover.
func UniverseSize[V comparable](params []Parameter[V]) (int, error) {
	doms, err := normalize(params)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := range doms {
		for j := i + 1; j < len(doms); j++ {
			total += len(doms[i].Values) * len(doms[j].Values)
		}
	}
	return total, nil
}

// normalize validates params and removes repeated values from the domains.
func normalize[V comparable](params []Parameter[V]) ([]Parameter[V], error) {
	seen := make(map[string]bool, len(params))
	res := make([]Parameter[V], 0, len(params))
	for _, param := range params {
		if param.Name == "" {
			return nil, &InputError{Reason: "empty parameter name"}
		}
		if seen[param.Name] {
			return nil, &InputError{Param: param.Name, Reason: "duplicate parameter name"}
		}
		seen[param.Name] = true
		if len(param.Values) == 0 {
			return nil, &InputError{Param: param.Name, Reason: "no values"}
		}
		dedup := make(map[V]bool, len(param.Values))
		values := make([]V, 0, len(param.Values))
		for _, v := range param.Values {
			if !dedup[v] {
				dedup[v] = true
				values = append(values, v)
			}
		}
		res = append(res, Parameter[V]{Name: param.Name, Values: values})
	}
	return res, nil
}

func (order Order) String() string {
	switch order {
	case OrderBySize:
		return "size"
	case OrderDeclared:
		return "declared"
	default:
		return fmt.Sprintf("Order(%d)", int(order))
	}
}

// ParseOrder is the inverse of Order.String.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "size":
		return OrderBySize, nil
	case "declared":
		return OrderDeclared, nil
	}
	return 0, fmt.Errorf("unknown parameter order %q (want size or declared)", s)
}

func (policy Policy) String() string {
	switch policy {
	case PolicyLookahead:
		return "lookahead"
	case PolicyAssigned:
		return "assigned"
	default:
		return fmt.Sprintf("Policy(%d)", int(policy))
	}
}

// ParsePolicy is the inverse of Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "lookahead":
		return PolicyLookahead, nil
	case "assigned":
		return PolicyAssigned, nil
	}
	return 0, fmt.Errorf("unknown scoring policy %q (want lookahead or assigned)", s)
}
