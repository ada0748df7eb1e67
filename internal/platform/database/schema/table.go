// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema describes the relational tables served by the API.

Each table is a [Table] value (name, ordered typed fields, primary key and
foreign-key references) embedded in a struct exposing its column names, so
callers write schema.Articles.Slug instead of a string literal.

# Safety

Column and table identifiers reaching SQL always originate from these
definitions. User input is only ever compared against them, never spliced in.
*/
package schema

import "slices"

// FieldType is the logical type of a column.
type FieldType string

const (
	TypeInt       FieldType = "int"
	TypeSmallInt  FieldType = "smallint"
	TypeText      FieldType = "text"
	TypeBool      FieldType = "bool"
	TypeTimestamp FieldType = "timestamp"
	TypeUUID      FieldType = "uuid"
	// TypeJSONText stores a JSON array serialized as TEXT.
	TypeJSONText FieldType = "json_text"
)

// Field is a single typed column.
type Field struct {
	Name string
	Type FieldType
	// Default is applied by stores that do not have server-side defaults.
	Default any
}

// Reference declares that Field holds the primary key of the Target table.
type Reference struct {
	Field  string
	Target string
	// Label is the human name used in "<Label> does not exist" messages.
	Label string
}

// Table is the generic description of a record collection.
type Table struct {
	Name       string
	PrimaryKey string
	Fields     []Field
	References []Reference
	// Unique lists the columns guarded by a partial unique index.
	Unique []string
}

// # Common Columns

const (
	ColStatus      = "status"
	ColIsDeleted   = "is_deleted"
	ColCreatedDate = "created_date"
	ColUpdatedDate = "updated_date"
)

// commonFields are appended to every soft-deletable table.
func commonFields() []Field {
	return []Field{
		{Name: ColStatus, Type: TypeSmallInt, Default: int64(1)},
		{Name: ColIsDeleted, Type: TypeSmallInt, Default: int64(0)},
		{Name: ColCreatedDate, Type: TypeTimestamp},
		{Name: ColUpdatedDate, Type: TypeTimestamp},
	}
}

// # Lookups

// HasField reports whether name is a column of t.
func (t Table) HasField(name string) bool {
	_, ok := t.Field(name)
	return ok
}

// Field returns the column definition for name.
func (t Table) Field(name string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the column names in declaration order.
func (t Table) FieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for _, field := range t.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Without returns the column names of t except the excluded ones.
func (t Table) Without(excluded ...string) []string {
	names := make([]string, 0, len(t.Fields))
	for _, field := range t.Fields {
		if !slices.Contains(excluded, field.Name) {
			names = append(names, field.Name)
		}
	}
	return names
}

// Reference returns the foreign-key declaration for field, if any.
func (t Table) Reference(field string) (Reference, bool) {
	for _, ref := range t.References {
		if ref.Field == field {
			return ref, true
		}
	}
	return Reference{}, false
}

// # Registry

// ByName resolves a table definition from its name.
func ByName(name string) (Table, bool) {
	for _, table := range All() {
		if table.Name == name {
			return table, true
		}
	}
	return Table{}, false
}

// All returns every table definition.
func All() []Table {
	return []Table{
		Users.Table,
		Sessions.Table,
		Categories.Table,
		Articles.Table,
		Projects.Table,
	}
}
