// Package s3mirror provides tests for client initialization and configuration.
package s3mirror

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// TestClient_New tests the New() constructor with default configuration.
func TestClient_New(t *testing.T) {
	tests := []struct {
		name string
		opts []mirrortypes.Option
	}{
		{
			name: "default configuration",
			opts: nil,
		},
		{
			name: "with region option",
			opts: []mirrortypes.Option{WithRegion("us-west-2")},
		},
		{
			name: "with multiple options",
			opts: []mirrortypes.Option{WithRegion("us-east-1"), WithMaxRetries(5)},
		},
		{
			name: "with endpoint and path style",
			opts: []mirrortypes.Option{
				WithEndpoint("http://localhost:4566"),
				WithForcePathStyle(true),
			},
		},
		{
			name: "with static credentials",
			opts: []mirrortypes.Option{
				WithRegion("us-east-1"),
				WithStaticCredentials("AKIAEXAMPLE", "secret", ""),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts...)

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NotNil(t, client.store)
			assert.NotNil(t, client.fs)
			assert.NotNil(t, client.logger)
			assert.Positive(t, client.concurrency)
		})
	}
}

// TestClient_New_WithCustomConfig verifies that a caller-supplied AWS config
// bypasses the default loading chain.
func TestClient_New_WithCustomConfig(t *testing.T) {
	cfg := aws.Config{Region: "eu-central-1"}

	client, err := New(WithAWSConfig(&cfg))

	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotNil(t, client.store)
}

// TestClient_New_ConcurrentSafety tests that client creation is safe for concurrent use.
func TestClient_New_ConcurrentSafety(t *testing.T) {
	const numGoroutines = 10

	var wg sync.WaitGroup
	clients := make([]*Client, numGoroutines)
	errs := make([]error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			clients[idx], errs[idx] = New(WithRegion("us-east-1"))
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, clients[i])
	}
}

// TestNewWithStore verifies construction around a caller-supplied store.
func TestNewWithStore(t *testing.T) {
	store := &testutil.MockObjectStore{}

	client := NewWithStore(store)

	require.NotNil(t, client)
	assert.Equal(t, store, client.store)
	assert.NotNil(t, client.fs)
	assert.NotNil(t, client.logger)
	assert.Equal(t, 5, client.concurrency)
}

// TestClient_SetFilesystem verifies the filesystem can be swapped after creation.
func TestClient_SetFilesystem(t *testing.T) {
	client := NewWithStore(&testutil.MockObjectStore{})
	memfs := billy.NewInMemoryFS()

	client.SetFilesystem(memfs)

	assert.Equal(t, memfs, client.filesystem())
}

// TestClient_Close verifies Close is safe to call.
func TestClient_Close(t *testing.T) {
	client := NewWithStore(&testutil.MockObjectStore{})

	assert.NoError(t, client.Close())
}

// TestWithRegion tests the region client option.
func TestWithRegion(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithRegion("ap-southeast-2")(cfg)

	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

// TestWithEndpoint tests the endpoint client option.
func TestWithEndpoint(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithEndpoint("http://localhost:4566")(cfg)

	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
}

// TestWithStaticCredentials tests the static credentials client option.
func TestWithStaticCredentials(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithStaticCredentials("key-id", "secret", "token")(cfg)

	assert.Equal(t, "key-id", cfg.AccessKeyID)
	assert.Equal(t, "secret", cfg.SecretAccessKey)
	assert.Equal(t, "token", cfg.SessionToken)
}

// TestWithMaxRetries tests the retry count client option.
func TestWithMaxRetries(t *testing.T) {
	tests := []struct {
		name    string
		retries int
	}{
		{name: "positive retries", retries: 7},
		{name: "zero disables retries", retries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &mirrortypes.ClientConfig{MaxRetries: 3}

			WithMaxRetries(tt.retries)(cfg)

			assert.Equal(t, tt.retries, cfg.MaxRetries)
		})
	}
}

// TestWithTimeout tests the timeout client option.
func TestWithTimeout(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithTimeout(30 * time.Second)(cfg)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

// TestWithConcurrency tests the client-level concurrency option.
func TestWithConcurrency(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		want        int
	}{
		{name: "positive value applied", concurrency: 10, want: 10},
		{name: "zero ignored", concurrency: 0, want: 5},
		{name: "negative ignored", concurrency: -1, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &mirrortypes.ClientConfig{Concurrency: 5}

			WithConcurrency(tt.concurrency)(cfg)

			assert.Equal(t, tt.want, cfg.Concurrency)
		})
	}
}

// TestWithForcePathStyle tests the path style client option.
func TestWithForcePathStyle(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithForcePathStyle(true)(cfg)

	assert.True(t, cfg.ForcePathStyle)
}

// TestWithCustomHTTPClient tests the HTTP client option.
func TestWithCustomHTTPClient(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}
	httpClient := &http.Client{Timeout: time.Minute}

	WithCustomHTTPClient(httpClient)(cfg)

	assert.Equal(t, httpClient, cfg.CustomHTTPClient)
}

// TestWithFilesystem tests the filesystem client option.
func TestWithFilesystem(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}
	memfs := billy.NewInMemoryFS()

	WithFilesystem(memfs)(cfg)

	assert.Equal(t, memfs, cfg.Filesystem)
}

// TestWithLogger tests the logger client option.
func TestWithLogger(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	WithLogger(logger)(cfg)

	assert.Equal(t, logger, cfg.Logger)
}

// TestWithPrefix tests the download prefix option.
func TestWithPrefix(t *testing.T) {
	cfg := &mirrortypes.DownloadOptionConfig{}

	WithPrefix("logs/2024/")(cfg)

	assert.Equal(t, "logs/2024/", cfg.Prefix)
}

// TestWithRegionHint tests the download region hint option.
func TestWithRegionHint(t *testing.T) {
	cfg := &mirrortypes.DownloadOptionConfig{}

	WithRegionHint("eu-west-1")(cfg)

	assert.Equal(t, "eu-west-1", cfg.RegionHint)
}

// TestWithOverwrite tests the overwrite download option.
func TestWithOverwrite(t *testing.T) {
	cfg := &mirrortypes.DownloadOptionConfig{}

	WithOverwrite(true)(cfg)

	assert.True(t, cfg.Overwrite)
}

// TestWithMaxConcurrency tests that the download concurrency option records
// the given value untouched; validation happens at download time.
func TestWithMaxConcurrency(t *testing.T) {
	tests := []struct {
		name  string
		value int
	}{
		{name: "positive value", value: 8},
		{name: "zero recorded as-is", value: 0},
		{name: "negative recorded as-is", value: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &mirrortypes.DownloadOptionConfig{MaxConcurrency: 5}

			WithMaxConcurrency(tt.value)(cfg)

			assert.Equal(t, tt.value, cfg.MaxConcurrency)
		})
	}
}

// TestWithProgressFunc tests the progress callback option.
func TestWithProgressFunc(t *testing.T) {
	cfg := &mirrortypes.DownloadOptionConfig{}
	called := false

	WithProgressFunc(func(mirrortypes.Progress) { called = true })(cfg)

	require.NotNil(t, cfg.OnProgress)
	cfg.OnProgress(mirrortypes.Progress{})
	assert.True(t, called)
}

// TestWithListPrefix tests the listing prefix option.
func TestWithListPrefix(t *testing.T) {
	cfg := &mirrortypes.ListOptionConfig{}

	WithListPrefix("state/")(cfg)

	assert.Equal(t, "state/", cfg.Prefix)
}

// TestOptionOrderIndependence verifies that distinct options commute.
func TestOptionOrderIndependence(t *testing.T) {
	first := &mirrortypes.ClientConfig{}
	WithRegion("us-west-2")(first)
	WithMaxRetries(9)(first)

	second := &mirrortypes.ClientConfig{}
	WithMaxRetries(9)(second)
	WithRegion("us-west-2")(second)

	assert.Equal(t, first.Region, second.Region)
	assert.Equal(t, first.MaxRetries, second.MaxRetries)
}

// TestOptionPrecedence verifies the last application of an option wins.
func TestOptionPrecedence(t *testing.T) {
	cfg := &mirrortypes.ClientConfig{}

	WithRegion("us-east-1")(cfg)
	WithRegion("us-west-2")(cfg)

	assert.Equal(t, "us-west-2", cfg.Region)
}
