// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/database/schema"
)

func TestTable_HasField(t *testing.T) {
	assert.True(t, schema.Articles.HasField("title"))
	assert.True(t, schema.Articles.HasField(schema.ColIsDeleted))
	assert.False(t, schema.Articles.HasField("title; DROP TABLE users"))
	assert.False(t, schema.Articles.HasField(""))
}

func TestTable_ReferencesResolve(t *testing.T) {
	for _, table := range schema.All() {
		for _, ref := range table.References {
			assert.True(t, table.HasField(ref.Field), "%s.%s", table.Name, ref.Field)

			target, ok := schema.ByName(ref.Target)
			require.True(t, ok, "unknown target %s", ref.Target)
			assert.True(t, target.HasField(target.PrimaryKey))
		}
	}
}

func TestTable_PublicColumnsHidePasswordHash(t *testing.T) {
	columns := schema.Users.PublicColumns()

	assert.NotContains(t, columns, schema.Users.PasswordHash)
	assert.Contains(t, columns, schema.Users.Email)
	assert.Len(t, columns, len(schema.Users.Fields)-1)
}

func TestTable_Reference(t *testing.T) {
	ref, ok := schema.Articles.Reference("category_id")
	require.True(t, ok)
	assert.Equal(t, "categories", ref.Target)
	assert.Equal(t, "Category ID", ref.Label)

	_, ok = schema.Articles.Reference("title")
	assert.False(t, ok)
}
