// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores operate through store.DBTX so they can run against
// either a *sql.DB or an open transaction.
package postgres
