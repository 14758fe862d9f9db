// Package db connects to PostgreSQL and owns the service schema.
//
// Connect builds a pgxpool from Config and verifies it with a ping. Migrate applies
// the embedded goose migrations (users, customers, social_links, options) followed
// by River's queue tables, so a fresh database is ready for both the stores and the
// job workers. WithTx wraps multi-statement writes such as link replacement.
//
// Environment:
//
//	DATABASE_URL                - PostgreSQL URL; empty selects in-memory stores
//	DATABASE_MIGRATIONS_TABLE   - goose version table (default: schema_migrations)
//	DATABASE_MAX_OPEN_CONNS     - pool size (default: 10)
//	DATABASE_MIN_CONNS          - idle connections kept open (default: 2)
//	DATABASE_RETRY_ATTEMPTS     - connection attempts at startup (default: 3)
//	DATABASE_RETRY_INTERVAL     - base wait between attempts (default: 5s)
package db
