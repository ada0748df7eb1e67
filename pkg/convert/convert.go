// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides type-coercion utilities for loosely typed input.

Request parameters reach the API as query strings, form values or decoded
JSON (where every number is a float64). These helpers fold all of those
representations into a single Go type and report whether the coercion was
lossless, so callers can distinguish "absent" from "malformed".
*/
package convert

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToInt64 coerces v into an int64.
//
// Accepted inputs: every Go integer type, integral float64 values and
// base-10 numeric strings. The boolean is false for anything else.
func ToInt64(v any) (int64, bool) {
	switch value := v.(type) {
	case int:
		return int64(value), true
	case int8:
		return int64(value), true
	case int16:
		return int64(value), true
	case int32:
		return int64(value), true
	case int64:
		return value, true
	case uint8:
		return int64(value), true
	case uint16:
		return int64(value), true
	case uint32:
		return int64(value), true
	case float64:
		if value != math.Trunc(value) || math.IsInf(value, 0) || math.IsNaN(value) {
			return 0, false
		}
		return int64(value), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ToInt is [ToInt64] narrowed to int.
func ToInt(v any) (int, bool) {
	n, ok := ToInt64(v)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, false
	}
	return int(n), true
}

// ToBool coerces v into a bool.
//
// Accepted inputs: bool, the strings "true"/"false"/"1"/"0" (case-insensitive)
// and the integers 0 and 1.
func ToBool(v any) (bool, bool) {
	switch value := v.(type) {
	case bool:
		return value, true
	case string:
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return false, false
	default:
		n, ok := ToInt64(v)
		if !ok || (n != 0 && n != 1) {
			return false, false
		}
		return n == 1, true
	}
}

// ToString renders scalars as strings. Nil yields "".
func ToString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		if n, ok := ToInt64(v); ok {
			return strconv.FormatInt(n, 10)
		}
		return ""
	}
}

// FlagInt maps a boolean onto the 0/1 SMALLINT flags used by the store.
func FlagInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// ToStrings decodes a JSON array stored as text. Empty, null or malformed
// text yields an empty, non-nil slice.
func ToStrings(v any) []string {
	values := []string{}
	text := ToString(v)
	if strings.TrimSpace(text) == "" {
		return values
	}
	if err := json.Unmarshal([]byte(text), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
