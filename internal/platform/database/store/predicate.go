// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package store

import (
	"strings"

	"github.com/taibuivan/folio/internal/platform/database/schema"
)

// Op identifies the kind of a [Predicate] node.
type Op string

const (
	OpAll    Op = "all"
	OpEq     Op = "eq"
	OpNe     Op = "ne"
	OpLt     Op = "lt"
	OpGt     Op = "gt"
	OpLike   Op = "like"
	OpIn     Op = "in"
	OpIsNull Op = "is_null"
	OpAnd    Op = "and"
	OpOr     Op = "or"
)

// Predicate is a structured boolean expression over table columns.
//
// Predicates are plain data. Stores translate them into their own query
// language with every value bound as a parameter, never interpolated.
type Predicate struct {
	Op       Op
	Field    string
	Value    any
	Values   []any
	Children []Predicate
}

// # Constructors

// All matches every row.
func All() Predicate { return Predicate{Op: OpAll} }

// Eq matches rows where field equals value.
func Eq(field string, value any) Predicate {
	return Predicate{Op: OpEq, Field: field, Value: value}
}

// Ne matches rows where field differs from value.
func Ne(field string, value any) Predicate {
	return Predicate{Op: OpNe, Field: field, Value: value}
}

// Lt matches rows where field is strictly less than value.
func Lt(field string, value any) Predicate {
	return Predicate{Op: OpLt, Field: field, Value: value}
}

// Gt matches rows where field is strictly greater than value.
func Gt(field string, value any) Predicate {
	return Predicate{Op: OpGt, Field: field, Value: value}
}

// Like matches rows where field matches a case-insensitive LIKE pattern
// ('%' any run, '_' any single character).
func Like(field, pattern string) Predicate {
	return Predicate{Op: OpLike, Field: field, Value: pattern}
}

// Contains is a [Like] on %substring%, with wildcards in s escaped.
func Contains(field, s string) Predicate {
	escaper := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return Like(field, "%"+escaper.Replace(s)+"%")
}

// In matches rows where field equals one of values. An empty list matches nothing.
func In(field string, values ...any) Predicate {
	return Predicate{Op: OpIn, Field: field, Values: values}
}

// IsNull matches rows where field is NULL.
func IsNull(field string) Predicate {
	return Predicate{Op: OpIsNull, Field: field}
}

// And matches rows satisfying every child. No children behaves as [All].
func And(children ...Predicate) Predicate {
	return Predicate{Op: OpAnd, Children: compact(children)}
}

// Or matches rows satisfying at least one child. No children matches nothing.
func Or(children ...Predicate) Predicate {
	return Predicate{Op: OpOr, Children: compact(children)}
}

// compact drops zero-value predicates so optional filters can be passed inline.
func compact(children []Predicate) []Predicate {
	kept := children[:0:0]
	for _, child := range children {
		if child.Op != "" {
			kept = append(kept, child)
		}
	}
	return kept
}

// # Introspection

// Fields returns every column referenced by p, depth-first.
func (p Predicate) Fields() []string {
	var fields []string
	p.walk(func(node Predicate) {
		if node.Field != "" {
			fields = append(fields, node.Field)
		}
	})
	return fields
}

// Validate checks that every referenced column exists in table.
func (p Predicate) Validate(table schema.Table) error {
	for _, field := range p.Fields() {
		if !table.HasField(field) {
			return &FieldError{Table: table.Name, Field: field}
		}
	}
	return nil
}

func (p Predicate) walk(visit func(Predicate)) {
	visit(p)
	for _, child := range p.Children {
		child.walk(visit)
	}
}
