// Package store persists solved market runs.
//
// A run is written as one row in runs plus one row per firm in run_firms,
// inside a single transaction. Two backends share the same row layout:
//
//   - PostgresStore: pgx pool, inserts queued on a pgx.Batch
//   - SQLiteStore: sqlx over modernc.org/sqlite, prepared inserts
//
// Open picks the backend from config.StorageConfig.
package store
