// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL migration files, applied in name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
