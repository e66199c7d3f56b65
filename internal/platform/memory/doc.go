// Package memory provides in-process implementations of the storage
// interfaces in internal/store. They back the "memory" database driver and
// are used by service and API tests that must not depend on PostgreSQL.
package memory
