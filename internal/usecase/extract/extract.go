// Package extract selects single values out of JSON documents using JSONPath.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

var ErrNoValue = errors.New("no value found")

// Select evaluates expr against the JSON document body and renders the result
// as a string. A single-element array is unwrapped; other arrays and objects
// are rendered as compact JSON.
func Select(body []byte, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", errors.New("empty jsonpath expression")
	}

	doc, err := parseJSON(body)
	if err != nil {
		return "", fmt.Errorf("document is not valid JSON: %w", err)
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", fmt.Errorf("jsonpath %s: %w", expr, err)
	}
	if isEmptyValue(val) {
		return "", fmt.Errorf("jsonpath %s: %w", expr, ErrNoValue)
	}

	return toString(val)
}

// SelectValue marshals v to JSON and calls Select on it.
func SelectValue(v any, expr string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Select(b, expr)
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	if arr, ok := v.([]any); ok {
		if len(arr) == 1 {
			return toString(arr[0])
		}
		b, err := json.Marshal(arr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(t), nil
	}
}
