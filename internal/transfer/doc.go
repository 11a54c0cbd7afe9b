// Package transfer executes the per-object work of a bucket download.
// This includes resolving destination paths, skip-if-exists handling,
// streaming object bodies to disk, and fanning workers out across keys
// under a strict concurrency cap.
//
// The transfer package aggregates per-object outcomes into a single result
// and delegates to the storeapi interface for the actual AWS SDK calls.
package transfer
