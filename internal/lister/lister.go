package lister

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/storeapi"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// maxPageSize is the largest page size ListObjectsV2 allows.
const maxPageSize = 1000

// Lister enumerates the downloadable contents of a bucket.
type Lister struct {
	store storeapi.ObjectStore
}

// New creates a new Lister.
func New(store storeapi.ObjectStore) *Lister {
	return &Lister{
		store: store,
	}
}

// Keys returns every downloadable object key under prefix, in API page
// order. Pagination is handled internally; callers never see page
// boundaries. Cancellation aborts the walk and returns the context error
// rather than a partial list.
func (l *Lister) Keys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	err := l.forEachObject(ctx, bucket, prefix, func(key string, _ int64) {
		keys = append(keys, key)
	})
	if err != nil {
		return nil, err
	}

	return keys, nil
}

// Summarize folds the objects under prefix into a count and total byte size
// without retaining keys. It applies the same marker filtering as Keys, so
// the two always agree on what is downloadable.
func (l *Lister) Summarize(ctx context.Context, bucket, prefix string) (*mirrortypes.BucketSummary, error) {
	summary := &mirrortypes.BucketSummary{}

	err := l.forEachObject(ctx, bucket, prefix, func(_ string, size int64) {
		summary.ObjectCount++
		summary.TotalBytes += size
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

// forEachObject pages through the bucket and invokes fn once per non-marker
// entry. The continuation token drives pagination until the store reports a
// final page.
func (l *Lister) forEachObject(
	ctx context.Context,
	bucket, prefix string,
	fn func(key string, size int64),
) error {
	var continuationToken *string

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("listing cancelled: %w", err)
		}

		input := &s3.ListObjectsV2Input{
			Bucket:  aws.String(bucket),
			Prefix:  aws.String(prefix),
			MaxKeys: aws.Int32(maxPageSize),
		}
		if continuationToken != nil {
			input.ContinuationToken = continuationToken
		}

		output, err := l.store.ListObjectsV2(ctx, input)
		if err != nil {
			return fmt.Errorf("list objects page: %w", err)
		}

		for _, obj := range output.Contents {
			key := aws.ToString(obj.Key)
			if IsDirectoryMarker(key) {
				continue
			}
			fn(key, aws.ToInt64(obj.Size))
		}

		if !aws.ToBool(output.IsTruncated) {
			return nil
		}
		continuationToken = output.NextContinuationToken
	}
}

// IsDirectoryMarker reports whether key is a folder placeholder rather than
// a downloadable object.
func IsDirectoryMarker(key string) bool {
	return strings.HasSuffix(key, "/")
}
