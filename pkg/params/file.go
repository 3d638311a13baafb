// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/pairgen/pkg/config"
	"gopkg.in/yaml.v3"
)

// LoadFile reads parameters from a file, the format is chosen by the extension:
//
//	.json:       {"parameters": [{"name": "os", "values": ["linux", "darwin"]}]}
//	.yaml, .yml: os: [linux, darwin]
//	.toml:       os = ["linux", "darwin"]
//
// Parameters are returned in the order they appear in the file.
func LoadFile(filename string) ([]Parameter, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters file: %w", err)
	}
	params, err := LoadData(data, filepath.Ext(filename))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", filename, err)
	}
	return params, nil
}

// LoadData parses parameters in the format denoted by the file extension ext.
func LoadData(data []byte, ext string) ([]Parameter, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return parseJSON(data)
	case ".yaml", ".yml":
		return parseYAML(data)
	case ".toml":
		return parseTOML(data)
	}
	return nil, fmt.Errorf("unknown parameters file format %q (want .json, .yaml, .yml or .toml)", ext)
}

type jsonFile struct {
	Parameters []JSONParameter `json:"parameters"`
}

// JSONParameter is the JSON form of a parameter: {"name": "os", "values": ["linux", 1, true]}.
type JSONParameter struct {
	Name   string      `json:"name"`
	Values []JSONValue `json:"values"`
}

func (p JSONParameter) Parameter() Parameter {
	param := Parameter{Name: p.Name}
	for _, v := range p.Values {
		param.Values = append(param.Values, string(v))
	}
	return param
}

// JSONValue is a scalar JSON value kept as text.
// Numbers keep their literal form, so 1.50 stays "1.50".
type JSONValue string

func (v *JSONValue) UnmarshalJSON(data []byte) error {
	var x any
	if err := json.Unmarshal(data, &x); err != nil {
		return err
	}
	switch x := x.(type) {
	case string:
		*v = JSONValue(x)
	case float64, bool:
		*v = JSONValue(strings.TrimSpace(string(data)))
	default:
		return fmt.Errorf("value %s is not a string, number or bool", data)
	}
	return nil
}

func parseJSON(data []byte) ([]Parameter, error) {
	var file jsonFile
	if err := config.LoadData(data, &file); err != nil {
		return nil, err
	}
	var res []Parameter
	for _, p := range file.Parameters {
		res = append(res, p.Parameter())
	}
	return res, nil
}

func parseYAML(data []byte) ([]Parameter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %v: want a mapping of parameter names to value lists", root.Line)
	}
	var res []Parameter
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		param := Parameter{Name: key.Value}
		switch val.Kind {
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("line %v: parameter %q: values must be scalars",
						item.Line, key.Value)
				}
				param.Values = append(param.Values, item.Value)
			}
		case yaml.ScalarNode:
			if val.ShortTag() != "!!null" {
				param.Values = []string{val.Value}
			}
		default:
			return nil, fmt.Errorf("line %v: parameter %q: want a list of values", val.Line, key.Value)
		}
		res = append(res, param)
	}
	return res, nil
}

func parseTOML(data []byte) ([]Parameter, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse toml: %w", err)
	}
	var res []Parameter
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		param := Parameter{Name: name}
		switch val := raw[name].(type) {
		case []any:
			for _, item := range val {
				s, err := tomlScalar(item)
				if err != nil {
					return nil, fmt.Errorf("parameter %q: %w", name, err)
				}
				param.Values = append(param.Values, s)
			}
		default:
			s, err := tomlScalar(val)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %w", name, err)
			}
			param.Values = []string{s}
		}
		res = append(res, param)
	}
	return res, nil
}

func tomlScalar(v any) (string, error) {
	switch v.(type) {
	case []any, map[string]any, []map[string]any:
		return "", fmt.Errorf("values must be scalars, got %T", v)
	}
	return fmt.Sprint(v), nil
}
