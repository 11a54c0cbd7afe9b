package transfer

import (
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// Tally accumulates per-object outcomes from concurrent transfer workers.
// All methods are safe for concurrent use.
type Tally struct {
	mu        sync.Mutex
	successes int
	bytes     int64
	failures  []mirrortypes.ObjectFailure
	canceled  bool
}

// NewTally creates an empty accumulator.
func NewTally() *Tally {
	return &Tally{}
}

// RecordSuccess counts one downloaded or skipped object. bytes is the
// number of bytes written for the object; skipped objects record zero.
func (t *Tally) RecordSuccess(bytes int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.successes++
	t.bytes += bytes
}

// RecordFailure counts one failed object together with its failure message.
func (t *Tally) RecordFailure(key, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failures = append(t.failures, mirrortypes.ObjectFailure{
		Key:     key,
		Message: message,
	})
}

// MarkCanceled flags the run as stopped early by cancellation.
func (t *Tally) MarkCanceled() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.canceled = true
}

// Snapshot returns the accumulated result. The returned value shares no
// state with the tally, so recording after a snapshot never mutates a
// result already handed out.
func (t *Tally) Snapshot() *mirrortypes.DownloadResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := &mirrortypes.DownloadResult{
		SuccessCount:         t.successes,
		FailureCount:         len(t.failures),
		TotalBytesDownloaded: t.bytes,
		Canceled:             t.canceled,
	}
	if len(t.failures) > 0 {
		result.Failures = make([]mirrortypes.ObjectFailure, len(t.failures))
		copy(result.Failures, t.failures)
	}

	return result
}
