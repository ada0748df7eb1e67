// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer builds pointers to literals.

Partial-update inputs use pointer fields to tell "absent" from "zero", so
callers and tests need a way to take the address of a constant.
*/
package pointer

// To returns a pointer to a copy of v (e.g. pointer.To("draft")).
func To[T any](v T) *T {
	return &v
}
