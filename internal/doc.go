// Package internal contains private implementation details for the s3mirror module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - storeapi: Interface seam over the AWS SDK S3 client
//   - lister: Bucket listing, marker filtering, and summaries
//   - transfer: Per-object downloads and the bounded worker pool
//   - validation: Input validation and local path resolution
//   - bufpool: Buffer reuse for streaming copies
//   - testutil: Mocks, progress recording, and LocalStack helpers
package internal
