package lister

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/testutil"
)

func TestIsDirectoryMarker(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"plain_file", "a.txt", false},
		{"nested_file", "folder/b.txt", false},
		{"top_level_marker", "folder/", true},
		{"nested_marker", "folder/sub/", true},
		{"bare_slash", "/", true},
		{"slash_in_middle", "a/b.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDirectoryMarker(tt.key))
		})
	}
}

func TestLister_Keys(t *testing.T) {
	tests := []struct {
		name     string
		objects  []testutil.SeededObject
		pageSize int
		prefix   string
		want     []string
	}{
		{
			name: "single page no markers",
			objects: []testutil.SeededObject{
				{Key: "a.txt", Body: "aaa"},
				{Key: "b.txt", Body: "bb"},
			},
			pageSize: 100,
			want:     []string{"a.txt", "b.txt"},
		},
		{
			name: "markers filtered out",
			objects: []testutil.SeededObject{
				{Key: "a.txt", Body: "aaa"},
				{Key: "folder/", Body: ""},
				{Key: "folder/b.txt", Body: "bb"},
				{Key: "folder/sub/", Body: ""},
			},
			pageSize: 100,
			want:     []string{"a.txt", "folder/b.txt"},
		},
		{
			name: "marker only bucket yields empty list",
			objects: []testutil.SeededObject{
				{Key: "one/", Body: ""},
				{Key: "two/", Body: ""},
			},
			pageSize: 100,
			want:     nil,
		},
		{
			name:     "empty bucket",
			objects:  nil,
			pageSize: 100,
			want:     nil,
		},
		{
			name: "pagination preserves page order",
			objects: []testutil.SeededObject{
				{Key: "a.txt", Body: "1"},
				{Key: "b.txt", Body: "2"},
				{Key: "c.txt", Body: "3"},
				{Key: "d.txt", Body: "4"},
				{Key: "e.txt", Body: "5"},
			},
			pageSize: 2,
			want:     []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"},
		},
		{
			name: "prefix filtering",
			objects: []testutil.SeededObject{
				{Key: "docs/readme.md", Body: "r"},
				{Key: "docs/guide.md", Body: "g"},
				{Key: "images/logo.png", Body: "l"},
			},
			pageSize: 100,
			prefix:   "docs/",
			want:     []string{"docs/readme.md", "docs/guide.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewSeededStore(tt.objects, tt.pageSize)
			lister := New(store)

			keys, err := lister.Keys(context.Background(), "test-bucket", tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestLister_Keys_PaginationRequestsEveryPage(t *testing.T) {
	objects := testutil.GenerateSeededObjects(5, "data/")
	store := testutil.NewSeededStore(objects, 2)
	lister := New(store)

	keys, err := lister.Keys(context.Background(), "test-bucket", "")
	require.NoError(t, err)
	assert.Len(t, keys, 5)
	// 5 objects at 2 per page needs 3 list calls
	assert.Equal(t, 3, store.ListObjectsV2Calls())
}

func TestLister_Keys_MarkerWithNonZeroSizeStillFiltered(t *testing.T) {
	// Some stores materialize folder placeholders with content; the key
	// shape alone decides whether an entry is downloadable.
	store := &testutil.MockObjectStore{}
	store.ListObjectsV2Func = func(
		_ context.Context,
		_ *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		return testutil.CreateListObjectsV2Output([]types.Object{
			testutil.CreateTestObject("folder/", 42, time.Now()),
			testutil.CreateTestObject("folder/file.txt", 10, time.Now()),
		}, false), nil
	}

	lister := New(store)
	keys, err := lister.Keys(context.Background(), "test-bucket", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"folder/file.txt"}, keys)
}

func TestLister_Keys_ErrorPropagates(t *testing.T) {
	store := &testutil.MockObjectStore{}
	store.ListObjectsV2Func = func(
		_ context.Context,
		_ *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		return nil, errors.New("access denied")
	}

	lister := New(store)
	keys, err := lister.Keys(context.Background(), "test-bucket", "")
	require.Error(t, err)
	assert.Nil(t, keys)
	assert.Contains(t, err.Error(), "list objects page")
	assert.Contains(t, err.Error(), "access denied")
}

func TestLister_Keys_CancelledBeforeStart(t *testing.T) {
	store := testutil.NewSeededStore(testutil.GenerateSeededObjects(3, ""), 100)
	lister := New(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	keys, err := lister.Keys(ctx, "test-bucket", "")
	require.Error(t, err)
	assert.Nil(t, keys)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.ListObjectsV2Calls())
}

func TestLister_Keys_CancelledMidPagination(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// Serve a truncated first page, cancelling as a side effect so the walk
	// must stop before requesting the second page.
	store := &testutil.MockObjectStore{}
	store.ListObjectsV2Func = func(
		_ context.Context,
		_ *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		cancel()
		return &s3.ListObjectsV2Output{
			Contents:              []types.Object{testutil.CreateTestObject("a.txt", 1, time.Now())},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("token"),
		}, nil
	}

	lister := New(store)
	keys, err := lister.Keys(ctx, "test-bucket", "")
	require.Error(t, err)
	assert.Nil(t, keys)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.ListObjectsV2Calls())
}

func TestLister_Keys_ForwardsBucketAndPrefix(t *testing.T) {
	store := &testutil.MockObjectStore{}
	store.ListObjectsV2Func = func(
		_ context.Context,
		input *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		assert.Equal(t, "test-bucket", aws.ToString(input.Bucket))
		assert.Equal(t, "photos/", aws.ToString(input.Prefix))
		return &s3.ListObjectsV2Output{}, nil
	}

	lister := New(store)
	_, err := lister.Keys(context.Background(), "test-bucket", "photos/")
	require.NoError(t, err)
}

func TestLister_Summarize(t *testing.T) {
	tests := []struct {
		name      string
		objects   []testutil.SeededObject
		prefix    string
		wantCount int64
		wantBytes int64
	}{
		{
			name: "counts and bytes",
			objects: []testutil.SeededObject{
				{Key: "a.txt", Body: "0123456789"},
				{Key: "folder/b.txt", Body: "01234567890123456789"},
			},
			wantCount: 2,
			wantBytes: 30,
		},
		{
			name: "markers excluded from both figures",
			objects: []testutil.SeededObject{
				{Key: "a.txt", Body: "12345"},
				{Key: "folder/", Body: ""},
			},
			wantCount: 1,
			wantBytes: 5,
		},
		{
			name: "marker only bucket",
			objects: []testutil.SeededObject{
				{Key: "one/", Body: ""},
				{Key: "two/", Body: ""},
			},
			wantCount: 0,
			wantBytes: 0,
		},
		{
			name:      "empty bucket",
			objects:   nil,
			wantCount: 0,
			wantBytes: 0,
		},
		{
			name: "prefix restricts the fold",
			objects: []testutil.SeededObject{
				{Key: "docs/a.md", Body: "aaaa"},
				{Key: "docs/b.md", Body: "bb"},
				{Key: "other/c.md", Body: "cccccc"},
			},
			prefix:    "docs/",
			wantCount: 2,
			wantBytes: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.NewSeededStore(tt.objects, 100)
			lister := New(store)

			summary, err := lister.Summarize(context.Background(), "test-bucket", tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, summary.ObjectCount)
			assert.Equal(t, tt.wantBytes, summary.TotalBytes)
		})
	}
}

func TestLister_Summarize_PagesWithoutMaterializing(t *testing.T) {
	objects := testutil.GenerateSeededObjects(7, "bulk/")
	store := testutil.NewSeededStore(objects, 3)
	lister := New(store)

	summary, err := lister.Summarize(context.Background(), "test-bucket", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), summary.ObjectCount)

	var wantBytes int64
	for _, obj := range objects {
		wantBytes += int64(len(obj.Body))
	}
	assert.Equal(t, wantBytes, summary.TotalBytes)
	assert.Equal(t, 3, store.ListObjectsV2Calls())
}

func TestLister_Summarize_ErrorPropagates(t *testing.T) {
	store := &testutil.MockObjectStore{}
	store.ListObjectsV2Func = func(
		_ context.Context,
		_ *s3.ListObjectsV2Input,
		_ ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error) {
		return nil, errors.New("no such bucket")
	}

	lister := New(store)
	summary, err := lister.Summarize(context.Background(), "missing-bucket", "")
	require.Error(t, err)
	assert.Nil(t, summary)
}
