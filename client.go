// Package s3mirror provides client initialization and configuration.
//
// The Client provides a high-level interface for mirroring S3 buckets into
// a local directory tree, with configurable options for credentials,
// endpoints, concurrency, and the local filesystem.
package s3mirror

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/storeapi"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// Client represents an S3 mirror client with configurable options.
// It provides thread-safe access to bucket listing and download
// operations with built-in concurrency control and progress tracking.
type Client struct {
	// store is the underlying AWS SDK S3 client
	store storeapi.ObjectStore

	// mu protects concurrent access to client configuration
	mu sync.RWMutex

	// fs is the filesystem abstraction for local file operations
	fs fs.Filesystem

	// logger receives operational events for all client operations
	logger *slog.Logger

	// concurrency is the default transfer fan-out for bucket downloads
	concurrency int
}

// New creates a new S3 mirror client with the provided options.
// It loads AWS credentials using the default credential chain unless
// static credentials are supplied, and applies the specified
// configuration options.
//
// Example:
//
//	client, err := s3mirror.New(
//	    s3mirror.WithRegion("us-west-2"),
//	    s3mirror.WithMaxRetries(3),
//	)
func New(opts ...mirrortypes.Option) (*Client, error) {
	// Apply functional options first to check for custom config
	clientCfg := &mirrortypes.ClientConfig{
		MaxRetries:     3, // Default retry count
		Timeout:        0, // No timeout by default
		Concurrency:    5, // Default transfer concurrency
		ForcePathStyle: false,
	}

	for _, opt := range opts {
		opt(clientCfg)
	}

	// Start with default AWS configuration or use custom config
	var cfg aws.Config
	var err error

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		var loadOpts []func(*config.LoadOptions) error
		if clientCfg.AccessKeyID != "" && clientCfg.SecretAccessKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(
					clientCfg.AccessKeyID,
					clientCfg.SecretAccessKey,
					clientCfg.SessionToken,
				),
			))
		}

		cfg, err = config.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, errors.NewError("client initialization", err)
		}
	}

	// Apply region from options if specified, otherwise ensure a region is set
	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	} else if cfg.Region == "" {
		cfg.Region = "us-east-1" // AWS default region
	}

	if clientCfg.MaxRetries > 0 {
		cfg.RetryMaxAttempts = clientCfg.MaxRetries
	}

	// Create S3 client with options
	var s3Opts []func(*s3.Options)

	// Point the client at a custom endpoint (MinIO, LocalStack) if needed
	if clientCfg.Endpoint != "" {
		endpoint := clientCfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	// Add path style option if needed
	if clientCfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	// Handle custom HTTP client, or build one for the timeout
	switch {
	case clientCfg.CustomHTTPClient != nil:
		httpClient := clientCfg.CustomHTTPClient
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	case clientCfg.Timeout > 0:
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	s3Client := s3.NewFromConfig(cfg, s3Opts...)

	// Initialize filesystem - use provided one or default to OS filesystem
	var filesystem fs.Filesystem
	if clientCfg.Filesystem != nil {
		filesystem = clientCfg.Filesystem
	} else {
		// Default to OS filesystem rooted at /
		filesystem = billy.NewOSFS("/")
	}

	// Initialize logger - use provided one or the process default
	logger := clientCfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		store:       s3Client,
		fs:          filesystem,
		logger:      logger,
		concurrency: clientCfg.Concurrency,
	}

	return client, nil
}

// NewWithStore creates a new client with a custom ObjectStore implementation.
// This is primarily used for testing with mocked stores.
func NewWithStore(store storeapi.ObjectStore) *Client {
	return &Client{
		store:       store,
		fs:          billy.NewOSFS("/"), // Default to OS filesystem
		logger:      slog.Default(),
		concurrency: 5, // Default transfer concurrency
	}
}

// SetFilesystem sets the filesystem implementation for the client.
// This is useful for testing or when the filesystem needs to be changed after creation.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

// filesystem returns the filesystem implementation currently in use.
func (c *Client) filesystem() fs.Filesystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs
}

// Close releases any resources held by the client.
// Currently a no-op but included for future extensibility.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Future: close any connection pools, cleanup resources
	return nil
}
