package cleaner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadMapping reads a flat string-to-string mapping from a YAML or JSON file.
func LoadMapping(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]string{}
	}
	return raw, nil
}

// StandardizeKeys rewrites mapping keys with StandardizeText so they match
// values produced by StandardizeJoinKey.
func StandardizeKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[StandardizeText(k)] = v
	}
	return out
}

// MergeMappings returns base overlaid with extra.
func MergeMappings(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
