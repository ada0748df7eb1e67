// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Pages are 1-indexed. A request asks for a page, a page size (limit) and a
// sort column; the store receives the equivalent LIMIT/OFFSET.
package pagination

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10

	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 200

	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// MaxPage bounds the page number so (page-1)*limit cannot overflow.
	MaxPage = 1_000_000
)

// Params holds the requested page window.
type Params struct {
	Page  int
	Limit int
	Sort  string
}

// Normalize fills zero values with defaults. Out-of-range values are left
// alone so validators can report them.
func (p Params) Normalize(defaultSort string) Params {
	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Sort == "" {
		p.Sort = defaultSort
	}
	return p
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages of size limit cover total items.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
