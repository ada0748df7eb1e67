// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"github.com/taibuivan/folio/internal/platform/database/schema"
	"github.com/taibuivan/folio/internal/platform/database/store"
	"github.com/taibuivan/folio/pkg/convert"
)

// Params is the canonical, validated parameter mapping of a request.
type Params map[string]any

// Merge returns the union of p and other.
//
// Keys already present in p win: a later validator can add fields but never
// overwrite or drop what an earlier one produced.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for key, value := range other {
		merged[key] = value
	}
	for key, value := range p {
		merged[key] = value
	}
	return merged
}

// Has reports whether key was produced by a validator.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Int returns the integer under key, or 0.
func (p Params) Int(key string) int {
	n, _ := convert.ToInt(p[key])
	return n
}

// Int64 returns the integer under key, or 0.
func (p Params) Int64(key string) int64 {
	n, _ := convert.ToInt64(p[key])
	return n
}

// String returns the text under key, or "".
func (p Params) String(key string) string {
	return convert.ToString(p[key])
}

// Bool returns the boolean under key, or false.
func (p Params) Bool(key string) bool {
	b, _ := convert.ToBool(p[key])
	return b
}

// Record projects p onto the writable columns of table: the primary key and
// list-only keys are dropped, as is anything the table does not define.
func (p Params) Record(table schema.Table) store.Record {
	record := make(store.Record, len(p))
	for key, value := range p {
		if key == table.PrimaryKey || !table.HasField(key) {
			continue
		}
		if key == schema.ColIsDeleted || key == schema.ColCreatedDate || key == schema.ColUpdatedDate {
			continue
		}
		record[key] = value
	}
	return record
}
