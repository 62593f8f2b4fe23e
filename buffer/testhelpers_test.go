package buffer_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/MasterOfBinary/relabuf/buffer"
)

// testSource hands out items sent with push. Closing it ends intake with err,
// or io.EOF if err is nil.
type testSource struct {
	items chan string
	err   error
}

func newTestSource() *testSource {
	return &testSource{items: make(chan string)}
}

func (s *testSource) Read(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case item, ok := <-s.items:
		if !ok {
			if s.err != nil {
				return "", s.err
			}
			return "", io.EOF
		}
		return item, nil
	}
}

// push waits until the buffer has read every item.
func (s *testSource) push(t *testing.T, items ...string) {
	t.Helper()
	for _, item := range items {
		select {
		case s.items <- item:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out pushing %q", item)
		}
	}
}

// tryPush reports whether item was read within d.
func (s *testSource) tryPush(item string, d time.Duration) bool {
	select {
	case s.items <- item:
		return true
	case <-time.After(d):
		return false
	}
}

func (s *testSource) closeWith(err error) {
	s.err = err
	close(s.items)
}

func newBuffer(t *testing.T, cfg buffer.Config) *buffer.Buffer[string] {
	t.Helper()
	buf, err := buffer.New[string](cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return buf
}

// next calls Next with a timeout so a broken test fails instead of hanging.
func next(t *testing.T, buf *buffer.Buffer[string]) *buffer.Batch[string] {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	b, err := buf.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	return b
}

func nextErr(t *testing.T, buf *buffer.Buffer[string]) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	b, err := buf.Next(ctx)
	if err == nil {
		t.Fatalf("Next() returned batch %v, want an error", b.Items())
	}
	return err
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes of a logger.
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
