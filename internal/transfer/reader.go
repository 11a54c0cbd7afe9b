package transfer

import (
	"context"
	"io"
)

// ctxReader wraps a remote body reader so every read observes cancellation.
// The transport can block between chunks; checking the context on each read
// bounds how long a cancelled transfer keeps streaming.
type ctxReader struct {
	ctx    context.Context
	reader io.Reader
}

// Read implements io.Reader.
func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	//nolint:wrapcheck // io.Reader interface contract - error comes from underlying reader
	return r.reader.Read(p)
}
