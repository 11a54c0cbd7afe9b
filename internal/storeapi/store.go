// Package storeapi defines the object-store interface consumed by the
// download engine, to enable testing and mocking.
package storeapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the subset of the S3 API the module depends on. The engine
// itself needs paginated listing and object retrieval; bucket enumeration is
// exposed for the surrounding application.
type ObjectStore interface {
	// ListObjectsV2 lists one page of objects in a bucket
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)

	// GetObject retrieves an object's body and metadata
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)

	// ListBuckets lists the buckets owned by the caller
	ListBuckets(
		ctx context.Context,
		params *s3.ListBucketsInput,
		optFns ...func(*s3.Options),
	) (*s3.ListBucketsOutput, error)
}

// Verify that the AWS S3 client implements our interface
var _ ObjectStore = (*s3.Client)(nil)
