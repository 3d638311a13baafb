// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package render writes generated test suites in one of the supported formats.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/pairgen/pkg/osutil"
	"github.com/google/pairgen/pkg/pairwise"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	// CSV has a header row with parameter names followed by one row per case.
	CSV Format = iota
	// Text has one line per case: name=value pairs separated by spaces.
	Text
	// JSON is {"parameters": [names...], "cases": [[values...], ...]}.
	JSON
	// YAML is a sequence of mappings, one per case, keys in parameter order.
	YAML
)

var formatNames = map[Format]string{
	CSV:  "csv",
	Text: "text",
	JSON: "json",
	YAML: "yaml",
}

func (format Format) String() string {
	if name, ok := formatNames[format]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(format))
}

// ParseFormat returns the format with the given name, "" means CSV.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "csv":
		return CSV, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want csv, text, json or yaml)", name)
}

// FormatForFile infers the format from the file extension, ignoring a trailing .xz.
// Unknown extensions map to CSV.
func FormatForFile(filename string) Format {
	ext := filepath.Ext(strings.TrimSuffix(filename, ".xz"))
	format, err := ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		return CSV
	}
	return format
}

// Write renders cases to w. names sets the column order and must list
// every parameter the cases assign.
func Write(w io.Writer, format Format, names []string, cases []pairwise.Case[string]) error {
	switch format {
	case CSV:
		return writeCSV(w, names, cases)
	case Text:
		return writeText(w, names, cases)
	case JSON:
		return writeJSON(w, names, cases)
	case YAML:
		return writeYAML(w, names, cases)
	}
	return fmt.Errorf("unknown output format %v", format)
}

// WriteFile renders cases into filename. Files with the .xz suffix are compressed.
func WriteFile(filename string, format Format, names []string, cases []pairwise.Case[string]) error {
	buf := new(bytes.Buffer)
	var w io.Writer = buf
	var xw *xz.Writer
	if strings.HasSuffix(filename, ".xz") {
		var err error
		if xw, err = xz.NewWriter(buf); err != nil {
			return fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xw
	}
	if err := Write(w, format, names, cases); err != nil {
		return err
	}
	if xw != nil {
		if err := xw.Close(); err != nil {
			return fmt.Errorf("failed to compress %v: %w", filename, err)
		}
	}
	return osutil.WriteFile(filename, buf.Bytes())
}

func row(names []string, tc pairwise.Case[string]) ([]string, error) {
	res := make([]string, len(names))
	for i, name := range names {
		val, ok := tc[name]
		if !ok {
			return nil, fmt.Errorf("case %v has no value for parameter %q", tc, name)
		}
		res[i] = val
	}
	return res, nil
}

func writeCSV(w io.Writer, names []string, cases []pairwise.Case[string]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	for _, tc := range cases {
		vals, err := row(names, tc)
		if err != nil {
			return err
		}
		if err := cw.Write(vals); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeText(w io.Writer, names []string, cases []pairwise.Case[string]) error {
	for _, tc := range cases {
		vals, err := row(names, tc)
		if err != nil {
			return err
		}
		for i, val := range vals {
			vals[i] = names[i] + "=" + val
		}
		if _, err := fmt.Fprintln(w, strings.Join(vals, " ")); err != nil {
			return err
		}
	}
	return nil
}

type jsonSuite struct {
	Parameters []string   `json:"parameters"`
	Cases      [][]string `json:"cases"`
}

func writeJSON(w io.Writer, names []string, cases []pairwise.Case[string]) error {
	suite := jsonSuite{
		Parameters: names,
		Cases:      [][]string{},
	}
	if suite.Parameters == nil {
		suite.Parameters = []string{}
	}
	for _, tc := range cases {
		vals, err := row(names, tc)
		if err != nil {
			return err
		}
		suite.Cases = append(suite.Cases, vals)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(suite)
}

func writeYAML(w io.Writer, names []string, cases []pairwise.Case[string]) error {
	// Plain maps would be emitted with sorted keys, nodes keep the parameter order.
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, tc := range cases {
		vals, err := row(names, tc)
		if err != nil {
			return err
		}
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, val := range vals {
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: names[i]},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: val})
		}
		doc.Content = append(doc.Content, m)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
