package migrations

import "embed"

// FS SQL миграции, встроенные в бинарник.
//
//go:embed *.sql
var FS embed.FS
