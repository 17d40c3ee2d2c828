// Package types defines the shared data model for the FAQ matcher:
// canonical records, the fixed category set, candidate metadata and the
// match result payload.
//
// Every type here is a plain value. Nothing in this package is mutated
// after construction; FAQ-side values are built once at corpus load and
// shared read-only for the process lifetime.
package types
