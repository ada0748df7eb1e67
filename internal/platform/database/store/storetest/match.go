// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storetest

import (
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/convert"
)

// # Predicate Evaluation

// Match evaluates p against a single record using SQL semantics.
func Match(p store.Predicate, record store.Record) bool {
	switch p.Op {
	case "", store.OpAll:
		return true
	case store.OpEq:
		if p.Value == nil {
			return record.IsNull(p.Field)
		}
		return !record.IsNull(p.Field) && compareValues(record[p.Field], p.Value) == 0
	case store.OpNe:
		if p.Value == nil {
			return !record.IsNull(p.Field)
		}
		return record.IsNull(p.Field) || compareValues(record[p.Field], p.Value) != 0
	case store.OpLt:
		return !record.IsNull(p.Field) && compareValues(record[p.Field], p.Value) < 0
	case store.OpGt:
		return !record.IsNull(p.Field) && compareValues(record[p.Field], p.Value) > 0
	case store.OpLike:
		if record.IsNull(p.Field) {
			return false
		}
		return likePattern(convert.ToString(p.Value)).MatchString(record.String(p.Field))
	case store.OpIsNull:
		return record.IsNull(p.Field)
	case store.OpIn:
		for _, value := range p.Values {
			if !record.IsNull(p.Field) && compareValues(record[p.Field], value) == 0 {
				return true
			}
		}
		return false
	case store.OpAnd:
		for _, child := range p.Children {
			if !Match(child, record) {
				return false
			}
		}
		return true
	case store.OpOr:
		for _, child := range p.Children {
			if Match(child, record) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// likePattern compiles a case-insensitive LIKE pattern with '\' as escape.
func likePattern(pattern string) *regexp.Regexp {
	var expr strings.Builder
	expr.WriteString("(?is)^")

	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			expr.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			expr.WriteString(".*")
		case r == '_':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	expr.WriteString("$")
	return regexp.MustCompile(expr.String())
}

// normalize folds Go integer types into int64 so comparisons are uniform.
func normalize(value any) any {
	switch value.(type) {
	case int, int8, int16, int32, uint8, uint16, uint32:
		n, _ := convert.ToInt64(value)
		return n
	case time.Time:
		return value.(time.Time).UTC()
	}
	return value
}

// compareValues orders two column values. NULL sorts after everything.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	if ba, ok := a.(bool); ok {
		bb, ok := convert.ToBool(b)
		if !ok {
			return strings.Compare(convert.ToString(a), convert.ToString(b))
		}
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	}

	if na, ok := convert.ToInt64(a); ok {
		if nb, ok := convert.ToInt64(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}

	return strings.Compare(convert.ToString(a), convert.ToString(b))
}
