package transfer

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxReader_PassesDataThrough(t *testing.T) {
	reader := &ctxReader{
		ctx:    context.Background(),
		reader: strings.NewReader("hello world"),
	}

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestCtxReader_FailsOnceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reader := &ctxReader{
		ctx:    ctx,
		reader: strings.NewReader("0123456789"),
	}

	buf := make([]byte, 4)
	n, err := reader.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	cancel()

	n, err = reader.Read(buf)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, context.Canceled)
}
