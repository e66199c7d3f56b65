// Package postgres provides PostgreSQL implementations of the storage
// interfaces defined in internal/store, along with the embedded goose
// migrations that create the profile and score history schema.
package postgres
