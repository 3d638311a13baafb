// Copyright 2020 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"fmt"
	"strings"
)

// MultiFlag collects the values of a flag that may be passed several times,
// e.g. "-param os=linux,darwin -param arch=amd64,arm64".
// Values are kept verbatim, so they can contain commas.
type MultiFlag []string

// String correctly converts the flag values into a string which is required to
// parse them afterwards.
func (mf *MultiFlag) String() string {
	return fmt.Sprint(*mf)
}

// Set is used by flag.Parse to append the next occurrence of the flag.
func (mf *MultiFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("empty value")
	}
	*mf = append(*mf, value)
	return nil
}
