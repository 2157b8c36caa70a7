package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

func readText(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []Document{{Source: path, TypeTag: "txt", Text: string(data)}}, nil
}

func readJSON(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse json %s: %w", path, err)
	}
	return []Document{{Source: path, TypeTag: "json", Text: jsonToText(obj, "")}}, nil
}

// jsonToText flattens a decoded JSON value into indented searchable lines.
func jsonToText(obj any, prefix string) string {
	switch v := obj.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			switch v[k].(type) {
			case map[string]any, []any:
				parts = append(parts, prefix+k+":")
				parts = append(parts, jsonToText(v[k], prefix+"  "))
			default:
				parts = append(parts, fmt.Sprintf("%s%s: %v", prefix, k, v[k]))
			}
		}
		return strings.Join(parts, "\n")
	case []any:
		var parts []string
		for i, item := range v {
			parts = append(parts, fmt.Sprintf("%sItem %d:", prefix, i))
			parts = append(parts, jsonToText(item, prefix+"  "))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprintf("%v", v)
	}
}
