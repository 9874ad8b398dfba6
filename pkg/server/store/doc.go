// Package store defines the storage interfaces the board is built on.
//
// Interfaces here are implemented by the gorm subpackage for PostgreSQL
// and mocked with testify in tests. Handlers and the lifecycle service
// depend only on these interfaces.
package store
