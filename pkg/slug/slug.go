// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug converts between human text and machine identifiers.
//
// # Usage
//
// [From] derives URL slugs for articles and categories
// (e.g., "Đà Lạt travel notes" → "da-lat-travel-notes"). [Humanize] goes the
// other way for column names shown in messages ("category_id" → "Category ID").
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug [From] produces.
const MaxLength = 200

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)

	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// pattern is the shape of a valid slug.
	pattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	// letterFolds covers letters NFD does not decompose.
	letterFolds = strings.NewReplacer("đ", "d", "Đ", "D", "ø", "o", "Ø", "O", "ß", "ss", "ł", "l", "Ł", "L")

	titleCaser = cases.Title(language.English)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with hyphens.
// 5. Collapses multiple hyphens, trims, and caps the length at [MaxLength].
func From(s string) string {

	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, letterFolds.Replace(s))

	// 2. Lowercase
	result = strings.ToLower(result)

	// 3. Replace everything outside [a-z0-9-] with hyphens
	result = nonAlphanumeric.ReplaceAllString(result, "-")

	// 4. Clean up hyphenation
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}

	return result
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Humanize turns a snake_case column name into a label ("author_id" → "Author ID").
func Humanize(field string) string {
	words := strings.Split(field, "_")
	for i, word := range words {
		if word == "id" {
			words[i] = "ID"
			continue
		}
		words[i] = titleCaser.String(word)
	}
	return strings.Join(words, " ")
}
