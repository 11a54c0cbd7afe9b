// Package testutil provides test utilities and mocks for s3mirror operations.
// This package is internal and should only be used for testing within the module.
package testutil

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/storeapi"
)

// MockObjectStore is a mock implementation of the ObjectStore interface for
// testing. It allows customization of each operation through function fields
// and counts calls so tests can assert that no network request was made.
type MockObjectStore struct {
	ListObjectsV2Func func(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObjectFunc     func(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListBucketsFunc   func(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error)

	listObjectsV2Calls int64
	getObjectCalls     int64
	listBucketsCalls   int64
}

// ListObjectsV2 mocks the S3 ListObjectsV2 operation.
func (m *MockObjectStore) ListObjectsV2(
	ctx context.Context,
	params *s3.ListObjectsV2Input,
	optFns ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	atomic.AddInt64(&m.listObjectsV2Calls, 1)
	if m.ListObjectsV2Func != nil {
		return m.ListObjectsV2Func(ctx, params, optFns...)
	}
	return &s3.ListObjectsV2Output{}, nil
}

// GetObject mocks the S3 GetObject operation.
func (m *MockObjectStore) GetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	atomic.AddInt64(&m.getObjectCalls, 1)
	if m.GetObjectFunc != nil {
		return m.GetObjectFunc(ctx, params, optFns...)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(""))}, nil
}

// ListBuckets mocks the S3 ListBuckets operation.
func (m *MockObjectStore) ListBuckets(
	ctx context.Context,
	params *s3.ListBucketsInput,
	optFns ...func(*s3.Options),
) (*s3.ListBucketsOutput, error) {
	atomic.AddInt64(&m.listBucketsCalls, 1)
	if m.ListBucketsFunc != nil {
		return m.ListBucketsFunc(ctx, params, optFns...)
	}
	return &s3.ListBucketsOutput{}, nil
}

// ListObjectsV2Calls returns how many times ListObjectsV2 was invoked.
func (m *MockObjectStore) ListObjectsV2Calls() int {
	return int(atomic.LoadInt64(&m.listObjectsV2Calls))
}

// GetObjectCalls returns how many times GetObject was invoked.
func (m *MockObjectStore) GetObjectCalls() int {
	return int(atomic.LoadInt64(&m.getObjectCalls))
}

// ListBucketsCalls returns how many times ListBuckets was invoked.
func (m *MockObjectStore) ListBucketsCalls() int {
	return int(atomic.LoadInt64(&m.listBucketsCalls))
}

// Ensure MockObjectStore implements storeapi.ObjectStore interface
var _ storeapi.ObjectStore = (*MockObjectStore)(nil)

// SeededObject describes one object served by a seeded mock store.
type SeededObject struct {
	Key  string
	Body string
}

// NewSeededStore returns a MockObjectStore that serves the given objects:
// listing paginates in pageSize chunks (respecting Prefix and the
// continuation token), and GetObject streams the seeded body with its
// declared content length. Unknown keys produce a NoSuchKey error.
func NewSeededStore(objects []SeededObject, pageSize int) *MockObjectStore {
	if pageSize <= 0 {
		pageSize = 1000
	}

	store := &MockObjectStore{}

	store.ListObjectsV2Func = func(
		_ context.Context,
		params *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		prefix := aws.ToString(params.Prefix)

		var matched []SeededObject
		for _, obj := range objects {
			if strings.HasPrefix(obj.Key, prefix) {
				matched = append(matched, obj)
			}
		}

		start := 0
		if params.ContinuationToken != nil {
			offset, err := strconv.Atoi(aws.ToString(params.ContinuationToken))
			if err != nil {
				return nil, fmt.Errorf("bad continuation token: %w", err)
			}
			start = offset
		}

		end := start + pageSize
		if end > len(matched) {
			end = len(matched)
		}

		output := &s3.ListObjectsV2Output{
			IsTruncated: aws.Bool(end < len(matched)),
		}
		for _, obj := range matched[start:end] {
			output.Contents = append(output.Contents, types.Object{
				Key:  aws.String(obj.Key),
				Size: aws.Int64(int64(len(obj.Body))),
			})
		}
		if end < len(matched) {
			output.NextContinuationToken = aws.String(strconv.Itoa(end))
		}

		return output, nil
	}

	store.GetObjectFunc = func(
		_ context.Context,
		params *s3.GetObjectInput,
		_ ...func(*s3.Options),
	) (*s3.GetObjectOutput, error) {
		key := aws.ToString(params.Key)
		for _, obj := range objects {
			if obj.Key == key {
				return &s3.GetObjectOutput{
					Body:          io.NopCloser(strings.NewReader(obj.Body)),
					ContentLength: aws.Int64(int64(len(obj.Body))),
				}, nil
			}
		}
		return nil, &types.NoSuchKey{}
	}

	return store
}
