// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the SCORELAB_ prefix with dots replaced by
// underscores, e.g. SCORELAB_DATABASE_URL or SCORELAB_SCORING_MAX_BALANCE.
package config
