// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package pairwise

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrCoverageStall = errors.New("coverage stall")
)

// InputError is returned for malformed parameters before any generation work is done.
type InputError struct {
	Param  string
	Reason string
}

func (err *InputError) Error() string {
	if err.Param == "" {
		return fmt.Sprintf("invalid input: %v", err.Reason)
	}
	return fmt.Sprintf("invalid input: parameter %q: %v", err.Param, err.Reason)
}

func (err *InputError) Unwrap() error {
	return ErrInvalidInput
}

// StallError is returned when a generated case does not cover any new pair.
type StallError struct {
	Case      int
	Uncovered int
}

func (err *StallError) Error() string {
	return fmt.Sprintf("coverage stall: case %v covers no new pairs, %v pairs are still uncovered",
		err.Case, err.Uncovered)
}

func (err *StallError) Unwrap() error {
	return ErrCoverageStall
}
