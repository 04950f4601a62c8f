package spinning

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for concurrent use.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner(t *testing.T) {
	var buf syncBuffer
	s := New(context.Background(), &buf, ThemeAscii, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	s.Done()
	s.Done() // Calling twice is fine.
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[?25l"))
	assert.True(t, strings.HasSuffix(out, "\033[?25h"))
	assert.Contains(t, out, "|")
	assert.Contains(t, out, "/")
}

func TestReset(t *testing.T) {
	var buf bytes.Buffer
	Reset(&buf)
	assert.Equal(t, "\033[?25h\033[39;49;0m\n", buf.String())
}
