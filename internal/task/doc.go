// Package task provides the in-memory queue that moves long-running
// generation work off the request path. Tasks are executed one at a time,
// in submission order, by a single background worker; callers poll the
// queue for per-task status and results.
package task
