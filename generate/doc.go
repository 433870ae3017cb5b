// Package generate builds the grant embedding cache with synchronous,
// rate-limited provider calls.
//
// This is the fallback path for providers without an asynchronous batch
// API. The catalog is processed in fixed-size chunks with a pause between
// chunks; items within a chunk are embedded concurrently. A file lock
// keeps concurrent runs from racing on the cache files.
package generate
