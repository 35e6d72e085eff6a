// Package config loads the external configuration document the
// config-getter pass (spec §4.5 pass 2) resolves "#getConfig name"
// instructions against. There is no teacher analog for this concern;
// the YAML-backed shape follows SPEC_FULL.md's AMBIENT STACK, which
// reaches for gopkg.in/yaml.v3 wherever the corpus needs an external,
// human-editable settings document rather than hand-rolled parsing.
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the decoded external configuration object: a flat or
// nested map of names to scalars, matching the loose key/value shape
// "#getConfig" directives address by name.
type Document map[string]any

// Load decodes a YAML document into a Document.
func Load(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decoding configuration document")
	}
	return doc, nil
}

// Lookup resolves a dotted name ("build.target") against nested maps,
// returning (value, true) on success.
func (d Document) Lookup(name string) (any, bool) {
	return lookupPath(d, splitDots(name))
}

func splitDots(name string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	parts = append(parts, name[start:])
	return parts
}

func lookupPath(v any, path []string) (any, bool) {
	if len(path) == 0 {
		return v, true
	}
	m, ok := v.(Document)
	if !ok {
		if asMap, ok2 := v.(map[string]any); ok2 {
			m = asMap
		} else {
			return nil, false
		}
	}
	next, ok := m[path[0]]
	if !ok {
		return nil, false
	}
	return lookupPath(next, path[1:])
}
