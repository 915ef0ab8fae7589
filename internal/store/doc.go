// Package store defines the persistence interfaces for the platform's
// entities, together with the sentinel errors implementations must return.
// Concrete implementations live in internal/platform/postgres.
package store
