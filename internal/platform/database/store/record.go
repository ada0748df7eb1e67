// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"time"

	"github.com/taibuivan/folio/pkg/convert"
)

// Record is a single row keyed by column name.
//
// Values keep the driver's native types: integers as int16/int32/int64,
// timestamps as [time.Time], text as string. The typed getters below
// smooth over those differences.
type Record map[string]any

// Int64 returns the integer stored under key, or 0.
func (r Record) Int64(key string) int64 {
	n, _ := convert.ToInt64(r[key])
	return n
}

// String returns the text stored under key, or "".
func (r Record) String(key string) string {
	return convert.ToString(r[key])
}

// Bool returns the boolean (or 0/1 flag) stored under key.
func (r Record) Bool(key string) bool {
	b, _ := convert.ToBool(r[key])
	return b
}

// Time returns the timestamp stored under key, or the zero time.
func (r Record) Time(key string) time.Time {
	switch value := r[key].(type) {
	case time.Time:
		return value
	case *time.Time:
		if value != nil {
			return *value
		}
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, value)
		if err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// IsNull reports whether key is absent or holds nil.
func (r Record) IsNull(key string) bool {
	value, ok := r[key]
	return !ok || value == nil
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for key, value := range r {
		clone[key] = value
	}
	return clone
}

// Pick returns a copy of r restricted to keys.
func (r Record) Pick(keys ...string) Record {
	picked := make(Record, len(keys))
	for _, key := range keys {
		if value, ok := r[key]; ok {
			picked[key] = value
		}
	}
	return picked
}
