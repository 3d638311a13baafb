// Copyright 2024 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package stat

import (
	"sync"
	"time"
)

type AverageParameter interface {
	time.Duration | int
}

// AverageValue keeps the exact mean and the maximum of the saved samples,
// e.g. generation time or test cases per suite.
// It is meant to back a stat with a 'func() int' option.
type AverageValue[T AverageParameter] struct {
	mu    sync.Mutex
	count int
	sum   T
	max   T
}

// Value returns the mean of the samples rounded down, or 0 if there are none.
func (av *AverageValue[T]) Value() T {
	av.mu.Lock()
	defer av.mu.Unlock()
	if av.count == 0 {
		return 0
	}
	return av.sum / T(av.count)
}

func (av *AverageValue[T]) Max() T {
	av.mu.Lock()
	defer av.mu.Unlock()
	return av.max
}

func (av *AverageValue[T]) Count() int {
	av.mu.Lock()
	defer av.mu.Unlock()
	return av.count
}

func (av *AverageValue[T]) Save(val T) {
	av.mu.Lock()
	defer av.mu.Unlock()
	if av.count == 0 || val > av.max {
		av.max = val
	}
	av.count++
	av.sum += val
}
