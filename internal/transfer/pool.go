package transfer

import (
	"context"
	"sync"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3mirror/mirrortypes"
)

// Pool fans transfer workers out over a key list under a strict concurrency
// cap.
type Pool struct {
	worker    *Worker
	semaphore chan struct{}
}

// NewPool creates a pool that runs at most maxConcurrency transfers at
// once. maxConcurrency must be positive; the client layer validates it
// before construction.
func NewPool(worker *Worker, maxConcurrency int) *Pool {
	return &Pool{
		worker:    worker,
		semaphore: make(chan struct{}, maxConcurrency),
	}
}

// Run transfers every key and aggregates the outcomes into a single result.
// Start order follows the key slice; completion order is unconstrained. On
// cancellation the pool stops launching, lets in-flight transfers unwind
// through their own context checks, and returns the counts accumulated so
// far with Canceled set.
func (p *Pool) Run(ctx context.Context, req *Request, keys []string) *mirrortypes.DownloadResult {
	tally := NewTally()

	var wg sync.WaitGroup

	for _, key := range keys {
		if !p.acquire(ctx) {
			break
		}

		wg.Add(1)
		go func(key string) {
			defer func() {
				// Release semaphore
				<-p.semaphore
				wg.Done()
			}()

			result := p.worker.Transfer(ctx, req, key)
			switch result.Outcome {
			case OutcomeDownloaded, OutcomeSkipped:
				tally.RecordSuccess(result.Bytes)
			case OutcomeFailed:
				tally.RecordFailure(key, result.Message)
			case OutcomeCanceled:
				// Counted in neither direction; the final snapshot reports
				// the early stop.
			}
		}(key)
	}

	wg.Wait()

	if ctx.Err() != nil {
		tally.MarkCanceled()
	}

	return tally.Snapshot()
}

// acquire blocks until a transfer slot is free or the context is done. It
// reports whether a slot was acquired.
func (p *Pool) acquire(ctx context.Context) bool {
	select {
	case p.semaphore <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}
