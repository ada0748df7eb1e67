// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the versioned SQL schema so binaries carry their
// own migrations and never depend on a path on disk.
package migrations

import "embed"

// FS holds every NNNNNN_name.{up,down}.sql file.
//
//go:embed *.sql
var FS embed.FS
