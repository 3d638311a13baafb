// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package params collects pairwise parameters from command line arguments,
// interactive input and parameter files.
// All values are collected as text. A parameter with no values is passed through,
// pairwise.Generate rejects it with pairwise.ErrInvalidInput.
package params

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/pairgen/pkg/pairwise"
)

type Parameter = pairwise.Parameter[string]

// ParseArg parses a "name=value1,value2,..." command line argument.
// Values are trimmed and blank values are dropped.
func ParseArg(arg string) (Parameter, error) {
	name, values, ok := strings.Cut(arg, "=")
	if !ok {
		return Parameter{}, fmt.Errorf("bad parameter %q: want name=value1,value2,...", arg)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Parameter{}, fmt.Errorf("bad parameter %q: empty name", arg)
	}
	return Parameter{Name: name, Values: SplitValues(values)}, nil
}

// ParseArgs parses every argument with ParseArg.
// A repeated name replaces the values of the earlier parameter in place.
func ParseArgs(args []string) ([]Parameter, error) {
	var res []Parameter
	for _, arg := range args {
		param, err := ParseArg(arg)
		if err != nil {
			return nil, err
		}
		res = Merge(res, param)
	}
	return res, nil
}

// SplitValues splits a comma separated list of values.
func SplitValues(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// Collect interactively asks for parameter names and values until the user enters
// "done" or the input ends. Prompts are written to w.
// Parameters with no values are ignored, re-entering a name replaces its values.
func Collect(r io.Reader, w io.Writer) ([]Parameter, error) {
	var res []Parameter
	s := bufio.NewScanner(r)
	fmt.Fprintf(w, "Enter parameters for pairwise testing. Type 'done' when finished.\n\n")
	for {
		fmt.Fprintf(w, "Parameter name (or 'done'): ")
		if !s.Scan() {
			break
		}
		name := strings.TrimSpace(s.Text())
		if name == "" {
			continue
		}
		if strings.EqualFold(name, "done") {
			break
		}
		fmt.Fprintf(w, "Values for '%v' separated by commas: ", name)
		if !s.Scan() {
			break
		}
		values := SplitValues(s.Text())
		if len(values) == 0 {
			fmt.Fprintf(w, "No values entered, parameter ignored.\n\n")
			continue
		}
		res = Merge(res, Parameter{Name: name, Values: values})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	fmt.Fprintf(w, "\n")
	return res, nil
}

// Merge appends extra parameters to params.
// A parameter with an already known name replaces its values in place.
func Merge(params []Parameter, extra ...Parameter) []Parameter {
next:
	for _, param := range extra {
		for i := range params {
			if params[i].Name == param.Name {
				params[i].Values = param.Values
				continue next
			}
		}
		params = append(params, param)
	}
	return params
}
