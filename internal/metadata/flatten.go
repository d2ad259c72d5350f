package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a JSON or YAML metadata file and flattens it into tokens.
// The format is chosen by file extension.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided metadata path is intentional
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON metadata: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML metadata: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	return Flatten(doc), nil
}

// Flatten turns a decoded JSON/YAML document into tokens.
//
// Map values are visited in key order so the result is deterministic;
// keys themselves are not tokens. Lists are visited in order. Scalars are
// converted to strings; nulls are skipped.
func Flatten(doc any) []string {
	out := make([]string, 0)
	flatten(doc, &out)
	return out
}

func flatten(v any, out *[]string) {
	switch val := v.(type) {
	case nil:
		return
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			flatten(val[k], out)
		}
	case map[any]any:
		keys := make([]string, 0, len(val))
		byKey := make(map[string]any, len(val))
		for k, item := range val {
			s := fmt.Sprint(k)
			keys = append(keys, s)
			byKey[s] = item
		}
		slices.Sort(keys)
		for _, k := range keys {
			flatten(byKey[k], out)
		}
	case []any:
		for _, item := range val {
			flatten(item, out)
		}
	case string:
		*out = append(*out, val)
	case float64:
		*out = append(*out, strconv.FormatFloat(val, 'f', -1, 64))
	case int:
		*out = append(*out, strconv.Itoa(val))
	case bool:
		*out = append(*out, strconv.FormatBool(val))
	default:
		*out = append(*out, fmt.Sprint(val))
	}
}
