// Package s3mirror provides a high-level Go module for downloading S3
// buckets to local disk. It wraps AWS SDK v2 to provide an intuitive and
// efficient interface for mirroring bucket contents while maintaining
// flexibility for advanced use cases.
//
// The module emphasizes developer experience through simple APIs while
// maintaining performance through intelligent defaults for concurrency,
// buffering, and retries.
//
// Key features:
//   - Simple, zero-configuration usage with AWS credential chain
//   - Progressive enhancement through functional options
//   - Concurrent object transfers with a configurable limit
//   - Skip-if-exists semantics for cheap re-runs over the same tree
//   - Per-object progress events and failure reporting
//   - Bucket summaries without materializing object listings
//
// Example usage:
//
//	client, err := s3mirror.New(s3mirror.WithRegion("us-west-2"))
//	if err != nil {
//	    return err
//	}
//
//	// Mirror a bucket into a local directory
//	result, err := client.DownloadBucket(ctx, "my-bucket", "/data/mirror")
//	if err != nil {
//	    return err
//	}
//	if !result.IsSuccess() {
//	    log.Printf("%d objects failed", result.FailureCount)
//	}
package s3mirror
