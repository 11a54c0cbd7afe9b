package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	mirrorerrors "github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/bufpool"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/storeapi"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// invalidPathMessage is the recorded failure message for keys that do not
// map to a usable path under the download root.
const invalidPathMessage = "Invalid local path."

// dirPerm is the permission mode for created destination directories.
const dirPerm = 0o755

// Outcome classifies how a single object transfer ended.
type Outcome int

const (
	// OutcomeDownloaded means the object body was fully written to disk.
	OutcomeDownloaded Outcome = iota

	// OutcomeSkipped means the destination file already existed and the
	// overwrite policy left it untouched.
	OutcomeSkipped

	// OutcomeFailed means the object could not be transferred.
	OutcomeFailed

	// OutcomeCanceled means cancellation interrupted the transfer before it
	// finished.
	OutcomeCanceled
)

// Result describes the terminal state of one object transfer.
type Result struct {
	// Outcome is the terminal state of the transfer
	Outcome Outcome

	// Bytes is the number of bytes written for downloaded objects
	Bytes int64

	// Message carries the failure description for failed transfers
	Message string
}

// Request carries the per-invocation parameters shared by every object of
// one bucket download.
type Request struct {
	// Bucket is the source bucket name
	Bucket string

	// LocalRoot is the directory the bucket contents are downloaded into
	LocalRoot string

	// Overwrite controls whether existing destination files are replaced
	Overwrite bool

	// OnProgress receives per-object transfer events; may be nil
	OnProgress mirrortypes.ProgressFunc
}

// Worker transfers single objects from a bucket to the local filesystem.
// One worker is shared by every goroutine of a run; it holds no per-object
// state.
type Worker struct {
	store      storeapi.ObjectStore
	filesystem fs.Filesystem
	logger     *slog.Logger
}

// NewWorker creates a new Worker. The logger must be non-nil; the client
// layer installs a default.
func NewWorker(store storeapi.ObjectStore, filesystem fs.Filesystem, logger *slog.Logger) *Worker {
	return &Worker{
		store:      store,
		filesystem: filesystem,
		logger:     logger,
	}
}

// Transfer moves one object to its destination under the request's local
// root. Failures are returned as data rather than errors so one bad object
// never aborts its siblings; cancellation is reported as its own outcome
// and leaves no partial file behind.
func (w *Worker) Transfer(ctx context.Context, req *Request, key string) Result {
	dest, err := validation.SafeLocalPath(req.LocalRoot, key)
	if err != nil {
		w.logger.ErrorContext(ctx, "object key resolves outside the download root",
			"bucket", req.Bucket,
			"key", key)
		w.emit(req, mirrortypes.Progress{Key: key, Error: invalidPathMessage})
		return Result{Outcome: OutcomeFailed, Message: invalidPathMessage}
	}

	if err := w.filesystem.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return w.fail(ctx, req, key, dest, 0, fmt.Errorf("create parent directory: %w", err))
	}

	if !req.Overwrite {
		exists, err := w.filesystem.Exists(dest)
		if err != nil {
			return w.fail(ctx, req, key, dest, 0, fmt.Errorf("check destination file: %w", err))
		}
		if exists {
			return Result{Outcome: OutcomeSkipped}
		}
	}

	// Last check before the network request; once cancellation is raised no
	// new requests are issued.
	if ctx.Err() != nil {
		return Result{Outcome: OutcomeCanceled}
	}

	output, err := w.store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(req.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if ctx.Err() != nil {
			return Result{Outcome: OutcomeCanceled}
		}
		return w.fail(ctx, req, key, dest, 0, convertFetchError(req.Bucket, key, err))
	}
	defer output.Body.Close()

	totalBytes := aws.ToInt64(output.ContentLength)

	w.emit(req, mirrortypes.Progress{
		Key:        key,
		TotalBytes: totalBytes,
		LocalPath:  dest,
	})

	written, err := w.writeBody(ctx, output.Body, dest)
	if err != nil {
		if ctx.Err() != nil {
			// Cancellation mid-stream exits without a terminal event; the
			// coordinator reports the early stop.
			return Result{Outcome: OutcomeCanceled}
		}
		return w.fail(ctx, req, key, dest, totalBytes, err)
	}

	// Some stores omit the content length; fall back to what was written.
	if totalBytes == 0 {
		totalBytes = written
	}

	w.emit(req, mirrortypes.Progress{
		Key:             key,
		TotalBytes:      totalBytes,
		BytesDownloaded: written,
		LocalPath:       dest,
		Completed:       true,
	})

	return Result{Outcome: OutcomeDownloaded, Bytes: written}
}

// writeBody streams the remote body into the destination file. On any
// failure, including cancellation mid-stream, the partially written file is
// removed before returning.
func (w *Worker) writeBody(ctx context.Context, body io.Reader, dest string) (int64, error) {
	file, err := w.filesystem.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("open destination file: %w", err)
	}

	buf := bufpool.Get()
	defer bufpool.Put(buf)

	written, err := io.CopyBuffer(file, &ctxReader{ctx: ctx, reader: body}, buf)
	if err != nil {
		_ = file.Close()
		w.removePartial(ctx, dest)
		return 0, fmt.Errorf("stream object body: %w", err)
	}

	if err := file.Close(); err != nil {
		w.removePartial(ctx, dest)
		return 0, fmt.Errorf("close destination file: %w", err)
	}

	return written, nil
}

// removePartial deletes a partially written destination file so failed or
// cancelled transfers leave no truncated output behind.
func (w *Worker) removePartial(ctx context.Context, dest string) {
	if err := w.filesystem.Remove(dest); err != nil {
		w.logger.WarnContext(ctx, "failed to remove partial file",
			"path", dest,
			"error", err)
	}
}

// fail logs a per-object error, emits the "failed" progress event, and
// converts the error to a Failed result.
func (w *Worker) fail(
	ctx context.Context,
	req *Request,
	key, dest string,
	totalBytes int64,
	err error,
) Result {
	w.logger.ErrorContext(ctx, "object download failed",
		"bucket", req.Bucket,
		"key", key,
		"error", err)

	w.emit(req, mirrortypes.Progress{
		Key:        key,
		TotalBytes: totalBytes,
		LocalPath:  dest,
		Error:      err.Error(),
	})

	return Result{Outcome: OutcomeFailed, Message: err.Error()}
}

// emit pushes one progress event when the run has a callback installed.
func (w *Worker) emit(req *Request, event mirrortypes.Progress) {
	if req.OnProgress != nil {
		req.OnProgress(event)
	}
}

// convertFetchError maps AWS SDK failures from GetObject to the module's
// error types.
func convertFetchError(bucket, key string, err error) error {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return mirrorerrors.NewObjectError("download", bucket, key, mirrorerrors.ErrObjectNotFound)
	}

	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return mirrorerrors.NewObjectError("download", bucket, key, mirrorerrors.ErrBucketNotFound)
	}

	return mirrorerrors.NewObjectError("download", bucket, key, err)
}
