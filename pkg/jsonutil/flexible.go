// Package jsonutil tolerantly decodes JSON values whose types LLMs
// frequently get wrong (numbers as strings, booleans as strings, single
// values where lists are expected).
package jsonutil

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleInt converts a json.RawMessage to an int, accepting JSON
// numbers, numeric strings, and null. Returns fallback when the value is
// absent, null, or not numeric.
func FlexibleInt(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 || string(raw) == "null" {
		return fallback
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return int(numVal)
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(strVal)); err == nil {
			return n
		}
	}

	return fallback
}

// FlexibleBool converts a json.RawMessage to a bool, accepting JSON
// booleans, the strings "true"/"1"/"yes", and nonzero numbers.
func FlexibleBool(raw json.RawMessage) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return boolVal
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		switch strings.ToLower(strings.TrimSpace(strVal)) {
		case "true", "1", "yes":
			return true
		}
		return false
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		return numVal != 0
	}

	return false
}

// FlexibleString converts a json.RawMessage to a string, accepting
// strings, numbers, and booleans. Returns empty string for null/absent.
func FlexibleString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return strconv.FormatInt(int64(numVal), 10)
		}
		return strconv.FormatFloat(numVal, 'g', -1, 64)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return strconv.FormatBool(boolVal)
	}

	return string(raw)
}

// FlexibleStringList converts a json.RawMessage to a string slice,
// accepting a JSON array, a bare scalar (wrapped into a one-element
// slice), or null (nil). Blank entries are dropped.
func FlexibleStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var out []string

	var rawList []json.RawMessage
	if err := json.Unmarshal(raw, &rawList); err == nil {
		for _, item := range rawList {
			if s := strings.TrimSpace(FlexibleString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}

	if s := strings.TrimSpace(FlexibleString(raw)); s != "" {
		out = append(out, s)
	}
	return out
}
