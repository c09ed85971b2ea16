// Package database opens the databases solved runs are stored in.
//
//   - PostgreSQL: shared result store, pgx connection pool
//   - SQLite: local single-file result store, sqlx over the pure-Go modernc driver
package database
