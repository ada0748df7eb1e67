// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Folio", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				ae := apperr.As(v.Err())
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
				assert.Equal(t, apperr.KindRequired, ae.Details[0].Kind)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Length checks rune-aware length limits.
*/
func TestValidator_Length(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("title", "ééé", 3).MinLen("title", "ab", 2)
	assert.False(t, v.HasErrors())

	v.MaxLen("title", "abcd", 3)
	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindLength, ae.Details[0].Kind)
}

/*
TestValidator_Formats covers email, URL and slug checks in one chain.
*/
func TestValidator_Formats(t *testing.T) {
	v := &validate.Validator{}
	v.Email("email", "not-an-email").
		URL("website", "ftp://example.com").
		Slug("slug", "Bad Slug")

	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	require.Len(t, ae.Details, 3)

	fields := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		fields = append(fields, detail.Field)
	}
	assert.Equal(t, []string{"email", "website", "slug"}, fields)
}

/*
TestValidator_Custom only fails when the condition holds.
*/
func TestValidator_Custom(t *testing.T) {
	v := &validate.Validator{}
	v.Custom("password", false, "unused")
	assert.NoError(t, v.Err())

	v.Custom("password", true, "New password must differ from the current one")
	ae := apperr.As(v.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "New password must differ from the current one", ae.Details[0].Message)
}
