// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/pkg/convert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int64
		ok    bool
	}{
		{"string", "42", 42, true},
		{"padded string", " 7 ", 7, true},
		{"json number", float64(3), 3, true},
		{"fractional", 2.5, 0, false},
		{"int16 from pgx", int16(1), 1, true},
		{"word", "ten", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convert.ToInt64(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		input any
		want  bool
		ok    bool
	}{
		{"true", true, true},
		{"FALSE", false, true},
		{"1", true, true},
		{"0", false, true},
		{true, true, true},
		{float64(0), false, true},
		{int64(2), false, false},
		{"yes", false, false},
	}

	for _, tt := range tests {
		got, ok := convert.ToBool(tt.input)
		assert.Equal(t, tt.ok, ok, "input %v", tt.input)
		assert.Equal(t, tt.want, got, "input %v", tt.input)
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", convert.ToString(nil))
	assert.Equal(t, "12", convert.ToString(int64(12)))
	assert.Equal(t, "1.5", convert.ToString(1.5))
	assert.Equal(t, "true", convert.ToString(true))
}

func TestFlagInt(t *testing.T) {
	assert.Equal(t, int64(1), convert.FlagInt(true))
	assert.Equal(t, int64(0), convert.FlagInt(false))
}

func TestToStrings(t *testing.T) {
	assert.Equal(t, []string{"go", "sql"}, convert.ToStrings(`["go","sql"]`))
	assert.Equal(t, []string{}, convert.ToStrings(""))
	assert.Equal(t, []string{}, convert.ToStrings("null"))
	assert.Equal(t, []string{}, convert.ToStrings("not json"))
	assert.Equal(t, []string{}, convert.ToStrings(nil))
}
