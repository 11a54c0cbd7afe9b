// Package s3mirror provides functional options for configuring client and download behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3mirror

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// WithRegion sets the AWS region for S3 operations.
// If not specified, uses the default AWS region from the credential chain.
func WithRegion(region string) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithStaticCredentials sets explicit AWS credentials instead of the default
// credential chain. The session token may be empty for long-lived credentials.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		c.SessionToken = sessionToken
	}
}

// WithMaxRetries sets the maximum number of retry attempts for failed operations.
// Default is 3 retries. Set to 0 to disable retries.
func WithMaxRetries(maxRetries int) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout sets the timeout for individual S3 operations.
// Default is no timeout (0). Values should be positive durations.
func WithTimeout(timeout time.Duration) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithConcurrency sets the default number of concurrent object transfers
// used by bucket downloads. Default is 5 concurrent transfers.
func WithConcurrency(concurrency int) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual hosting.
// Default is false (uses virtual-hosted style).
func WithForcePathStyle(forcePathStyle bool) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
// Use this when you need fine-grained control over AWS SDK configuration.
func WithAWSConfig(config *aws.Config) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		// Store the custom config for later use
		c.CustomAWSConfig = config
	}
}

// WithCustomHTTPClient allows providing a custom HTTP client.
// This gives full control over HTTP behavior including timeouts, proxies, etc.
func WithCustomHTTPClient(client *http.Client) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.CustomHTTPClient = client
	}
}

// WithFilesystem sets a custom filesystem implementation for local file operations.
// This allows using in-memory filesystems for testing or virtual filesystems.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the structured logger used for operational events.
// If not specified, defaults to slog.Default().
func WithLogger(logger *slog.Logger) mirrortypes.Option {
	return func(c *mirrortypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithPrefix limits a bucket download to objects whose keys start with prefix.
// An empty prefix (the default) downloads the entire bucket.
func WithPrefix(prefix string) mirrortypes.DownloadOption {
	return func(c *mirrortypes.DownloadOptionConfig) {
		c.Prefix = prefix
	}
}

// WithRegionHint records the region a bucket is expected to live in.
// The hint is informational: it is surfaced in the download logs but does
// not change how requests are routed. Use WithRegion on the client to
// target a different region.
func WithRegionHint(region string) mirrortypes.DownloadOption {
	return func(c *mirrortypes.DownloadOptionConfig) {
		c.RegionHint = region
	}
}

// WithOverwrite controls whether existing local files are replaced.
// Default is false: objects whose destination file already exists are
// skipped without fetching and counted as successes.
func WithOverwrite(overwrite bool) mirrortypes.DownloadOption {
	return func(c *mirrortypes.DownloadOptionConfig) {
		c.Overwrite = overwrite
	}
}

// WithMaxConcurrency sets the maximum number of objects transferred in
// parallel for a single bucket download, overriding the client default.
// The value is validated when the download starts; values below 1 cause
// the download to fail rather than being silently adjusted.
func WithMaxConcurrency(maxConcurrency int) mirrortypes.DownloadOption {
	return func(c *mirrortypes.DownloadOptionConfig) {
		c.MaxConcurrency = maxConcurrency
	}
}

// WithProgressFunc registers a callback invoked for per-object transfer
// events. The callback may be invoked from multiple goroutines and must
// be safe for concurrent use.
func WithProgressFunc(fn mirrortypes.ProgressFunc) mirrortypes.DownloadOption {
	return func(c *mirrortypes.DownloadOptionConfig) {
		c.OnProgress = fn
	}
}

// WithListPrefix limits a listing or summary to objects whose keys start
// with prefix. An empty prefix (the default) covers the entire bucket.
func WithListPrefix(prefix string) mirrortypes.ListOption {
	return func(c *mirrortypes.ListOptionConfig) {
		c.Prefix = prefix
	}
}
