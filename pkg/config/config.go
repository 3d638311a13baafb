// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package config loads JSON configuration and parameter files.
// Lines starting with # are comments, unknown fields are errors.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
)

func LoadFile(filename string, cfg interface{}) error {
	if filename == "" {
		return fmt.Errorf("no config file specified")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := LoadData(data, cfg); err != nil {
		return fmt.Errorf("%v: %w", filename, err)
	}
	return nil
}

var commentRe = regexp.MustCompile(`(?m)^[ \t]*#.*$`)

func LoadData(data []byte, cfg interface{}) error {
	// Comments are blanked out rather than removed, so that offsets in errors
	// still point to the right line.
	data = commentRe.ReplaceAllFunc(data, func(comment []byte) []byte {
		return bytes.Repeat([]byte{' '}, len(comment))
	})
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		if line := errorLine(data, err); line != 0 {
			return fmt.Errorf("failed to parse config file: line %v: %w", line, err)
		}
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("failed to parse config file: trailing data after the top-level value")
	}
	return nil
}

func errorLine(data []byte, err error) int {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return bytes.Count(data[:offset], []byte{'\n'}) + 1
}
