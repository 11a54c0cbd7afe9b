// Package s3mirror provides the main mirror client and core operations.
package s3mirror

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	mirrorerrors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/lister"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/transfer"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

const (
	// localRootPerm is the permission mode for the created download root directory
	localRootPerm = 0o755
)

// DownloadBucket downloads every object in a bucket into a local directory
// tree rooted at localRoot, recreating key structure as relative paths.
//
// Objects are listed first and then transferred by a bounded worker pool in
// listing order. Keys ending with "/" are treated as directory markers and
// never downloaded. Existing destination files are skipped without fetching
// unless WithOverwrite(true) is set; skipped objects count as successes with
// zero bytes transferred.
//
// Per-object failures do not abort the download; they are collected in the
// returned DownloadResult. Cancelling ctx stops new transfers from starting
// and abandons in-flight ones, returning the tally accumulated so far with
// Canceled set.
//
// Returns:
//   - *DownloadResult: Success/failure counts, total bytes, and per-object failure details
//   - error: Returns an error if validation, listing, or root directory creation fails
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name fails validation
//   - ErrInvalidInput: If localRoot is blank or WithMaxConcurrency is given a value below 1
//   - ErrBucketNotFound: If the specified bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to list the bucket
//
// Example:
//
//	result, err := client.DownloadBucket(ctx, "my-bucket", "/data/mirror",
//	    s3mirror.WithOverwrite(true),
//	    s3mirror.WithMaxConcurrency(8),
//	    s3mirror.WithProgressFunc(func(p mirrortypes.Progress) {
//	        fmt.Printf("%s: %d/%d bytes\n", p.Key, p.BytesDownloaded, p.TotalBytes)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("downloaded %d objects, %d bytes\n", result.SuccessCount, result.TotalBytesDownloaded)
func (c *Client) DownloadBucket(
	ctx context.Context,
	bucket, localRoot string,
	opts ...mirrortypes.DownloadOption,
) (*mirrortypes.DownloadResult, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateLocalRoot(localRoot); err != nil {
		return nil, err
	}

	// Apply download options
	downloadCfg := &mirrortypes.DownloadOptionConfig{
		MaxConcurrency: c.concurrency, // Use client-level concurrency as default
	}
	for _, opt := range opts {
		opt(downloadCfg)
	}

	if err := validation.ValidateMaxConcurrency(downloadCfg.MaxConcurrency); err != nil {
		return nil, err
	}

	// List before touching the local tree so a failed listing leaves no trace.
	keys, err := lister.New(c.store).Keys(ctx, bucket, downloadCfg.Prefix)
	if err != nil {
		return nil, mirrorerrors.NewError("downloadBucket", c.convertAWSError(err)).WithBucket(bucket)
	}

	filesystem := c.filesystem()

	// The download root is created even when the bucket holds nothing.
	if err := filesystem.MkdirAll(localRoot, localRootPerm); err != nil {
		return nil, mirrorerrors.NewError("downloadBucket", err).
			WithBucket(bucket).
			WithMessage("create download root")
	}

	c.logger.InfoContext(ctx, "starting bucket download",
		"bucket", bucket,
		"prefix", downloadCfg.Prefix,
		"region_hint", downloadCfg.RegionHint,
		"objects", len(keys),
		"max_concurrency", downloadCfg.MaxConcurrency,
	)

	if len(keys) == 0 {
		return &mirrortypes.DownloadResult{}, nil
	}

	pool := transfer.NewPool(transfer.NewWorker(c.store, filesystem, c.logger), downloadCfg.MaxConcurrency)
	result := pool.Run(ctx, &transfer.Request{
		Bucket:     bucket,
		LocalRoot:  localRoot,
		Overwrite:  downloadCfg.Overwrite,
		OnProgress: downloadCfg.OnProgress,
	}, keys)

	c.logger.InfoContext(ctx, "bucket download finished",
		"bucket", bucket,
		"succeeded", result.SuccessCount,
		"failed", result.FailureCount,
		"bytes", result.TotalBytesDownloaded,
		"canceled", result.Canceled,
	)

	return result, nil
}

// ListObjects returns the keys of every downloadable object in a bucket, in
// the order the store reports them. Keys ending with "/" are treated as
// directory markers and excluded. The listing paginates internally, so
// buckets of any size are handled.
//
// Returns:
//   - []string: Object keys, nil when the bucket holds no downloadable objects
//   - error: Returns an error if the listing fails
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name fails validation
//   - ErrBucketNotFound: If the specified bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to list the bucket
//
// Example:
//
//	keys, err := client.ListObjects(ctx, "my-bucket",
//	    s3mirror.WithListPrefix("logs/2024/"),
//	)
func (c *Client) ListObjects(
	ctx context.Context,
	bucket string,
	opts ...mirrortypes.ListOption,
) ([]string, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}

	listCfg := &mirrortypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(listCfg)
	}

	keys, err := lister.New(c.store).Keys(ctx, bucket, listCfg.Prefix)
	if err != nil {
		return nil, mirrorerrors.NewError("listObjects", c.convertAWSError(err)).WithBucket(bucket)
	}

	return keys, nil
}

// GetBucketSummary walks a bucket's listing and reports the number of
// downloadable objects and their combined size in bytes. Directory markers
// are excluded from both figures. Keys are not retained, so the summary
// stays cheap even for very large buckets.
//
// Returns:
//   - *BucketSummary: Object count and total size in bytes
//   - error: Returns an error if the listing fails
//
// Errors:
//   - ErrInvalidBucketName: If the bucket name fails validation
//   - ErrBucketNotFound: If the specified bucket doesn't exist
//   - ErrAccessDenied: If the credentials lack permission to list the bucket
//
// Example:
//
//	summary, err := client.GetBucketSummary(ctx, "my-bucket")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d objects, %d bytes\n", summary.ObjectCount, summary.TotalBytes)
func (c *Client) GetBucketSummary(
	ctx context.Context,
	bucket string,
	opts ...mirrortypes.ListOption,
) (*mirrortypes.BucketSummary, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}

	listCfg := &mirrortypes.ListOptionConfig{}
	for _, opt := range opts {
		opt(listCfg)
	}

	summary, err := lister.New(c.store).Summarize(ctx, bucket, listCfg.Prefix)
	if err != nil {
		return nil, mirrorerrors.NewError("getBucketSummary", c.convertAWSError(err)).WithBucket(bucket)
	}

	return summary, nil
}

// ListBuckets returns every bucket the configured credentials can see.
//
// Returns:
//   - []BucketInfo: Bucket names and creation times
//   - error: Returns an error if the listing fails
//
// Errors:
//   - ErrAccessDenied: If the credentials lack permission to list buckets
//
// Example:
//
//	buckets, err := client.ListBuckets(ctx)
//	for _, b := range buckets {
//	    fmt.Println(b.Name)
//	}
func (c *Client) ListBuckets(ctx context.Context) ([]mirrortypes.BucketInfo, error) {
	output, err := c.store.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, mirrorerrors.NewError("listBuckets", c.convertAWSError(err))
	}

	buckets := make([]mirrortypes.BucketInfo, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		buckets = append(buckets, mirrortypes.BucketInfo{
			Name:      aws.ToString(bucket.Name),
			CreatedAt: aws.ToTime(bucket.CreationDate),
		})
	}

	return buckets, nil
}

// convertAWSError converts AWS SDK errors to our custom error types
func (c *Client) convertAWSError(err error) error {
	if err == nil {
		return nil
	}

	// Check for specific AWS SDK error types
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return mirrorerrors.ErrBucketNotFound
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return mirrorerrors.ErrObjectNotFound
	}

	// Check for error messages that contain specific error codes
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "NoSuchBucket"):
		return mirrorerrors.ErrBucketNotFound
	case strings.Contains(errMsg, "NoSuchKey"):
		return mirrorerrors.ErrObjectNotFound
	case strings.Contains(errMsg, "AccessDenied"):
		return mirrorerrors.ErrAccessDenied
	}

	// Return the original error if we can't convert it
	return err
}
