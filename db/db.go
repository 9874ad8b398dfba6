// Package db carries the SQL migrations for the board schema so they
// can be embedded into the boardctl binary.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
