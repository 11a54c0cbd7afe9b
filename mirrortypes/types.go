// Package mirrortypes provides shared type definitions for the s3mirror module.
package mirrortypes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
)

// BucketInfo describes a bucket visible to the caller's credentials.
type BucketInfo struct {
	// Name is the bucket name
	Name string

	// CreatedAt is when the bucket was created
	CreatedAt time.Time
}

// BucketSummary aggregates the downloadable contents of a bucket prefix.
// Directory markers (keys ending in "/") are excluded from both figures.
type BucketSummary struct {
	// ObjectCount is the number of downloadable objects under the prefix
	ObjectCount int64

	// TotalBytes is the combined size of those objects in bytes
	TotalBytes int64
}

// Progress is a per-object transfer event. Each object produces at most two
// events: a "started" event (Completed=false, BytesDownloaded=0, Error
// empty) once its byte stream begins, then exactly one of "finished"
// (Completed=true, BytesDownloaded=TotalBytes) or "failed" (Completed=false,
// Error non-empty). Objects that fail before any bytes move emit only the
// "failed" event. Objects skipped because the destination already exists
// emit nothing. Transfers abandoned mid-stream by cancellation emit no
// terminal event, so callers see their "started" event only.
type Progress struct {
	// Key is the S3 object key being transferred
	Key string

	// TotalBytes is the declared content length of the object
	TotalBytes int64

	// BytesDownloaded is the number of bytes written so far
	BytesDownloaded int64

	// LocalPath is the destination path on the local filesystem
	LocalPath string

	// Completed reports whether the transfer finished successfully
	Completed bool

	// Error carries the failure message when the transfer failed, otherwise ""
	Error string
}

// ProgressFunc receives per-object transfer events. It is invoked
// synchronously from transfer worker goroutines, so calls may arrive
// concurrently; implementations must be safe for concurrent use and should
// return quickly to avoid stalling transfers.
type ProgressFunc func(Progress)

// ObjectFailure records a single object that could not be downloaded.
type ObjectFailure struct {
	// Key is the S3 object key that failed
	Key string

	// Message is the failure description
	Message string
}

// DownloadResult is the terminal summary of a bucket download. It is built
// fresh per invocation and never mutated after being returned.
type DownloadResult struct {
	// SuccessCount is the number of objects downloaded or skipped as
	// already present
	SuccessCount int

	// FailureCount is the number of objects that could not be downloaded
	FailureCount int

	// TotalBytesDownloaded is the total bytes written to the local filesystem
	TotalBytesDownloaded int64

	// Failures lists each failed object with its message, in recording order
	Failures []ObjectFailure

	// Canceled reports that the run stopped early because the context was
	// canceled; the counts cover only the objects attempted before the stop
	Canceled bool
}

// IsSuccess reports whether every attempted object succeeded. An empty
// object set counts as success.
func (r *DownloadResult) IsSuccess() bool {
	return r.FailureCount == 0
}

// Configuration types for functional options

// ClientConfig holds configuration for the s3mirror client.
type ClientConfig struct {
	Region           string
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	SessionToken     string
	MaxRetries       int
	Timeout          time.Duration
	Concurrency      int
	ForcePathStyle   bool
	CustomAWSConfig  *aws.Config
	CustomHTTPClient *http.Client
	Filesystem       fs.Filesystem // Filesystem abstraction for local writes
	Logger           *slog.Logger
}

// DownloadOptionConfig holds configuration for bucket download operations
// via functional options.
type DownloadOptionConfig struct {
	Prefix         string
	RegionHint     string
	Overwrite      bool
	MaxConcurrency int
	OnProgress     ProgressFunc
}

// ListOptionConfig holds configuration for list and summary operations via
// functional options.
type ListOptionConfig struct {
	Prefix string
}

// Option is a functional option for configuring the s3mirror client.
type (
	Option func(*ClientConfig)
	// DownloadOption is a functional option for configuring bucket download operations.
	DownloadOption func(*DownloadOptionConfig)
	// ListOption is a functional option for configuring list and summary operations.
	ListOption func(*ListOptionConfig)
)
