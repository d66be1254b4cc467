// Package postgres contains the PostgreSQL implementations of the store
// interfaces. Each store accepts a DBTX so the same code serves both a
// connection pool and an in-flight transaction.
package postgres
