package buffer_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	. "github.com/MasterOfBinary/relabuf/buffer"
)

func TestBuffer_SoftCapRelease(t *testing.T) {
	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 3, HardCap: 5, ReleaseAfter: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a", "b", "c")

	b := next(t, buf)
	if b.Reason() != SoftCapReached {
		t.Errorf("Reason() = %v, want %v", b.Reason(), SoftCapReached)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, b.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if b.Seq() != 1 {
		t.Errorf("Seq() = %d, want 1", b.Seq())
	}
	if err := b.Confirm(); err != nil {
		t.Errorf("Confirm() error = %v", err)
	}
}

func TestBuffer_TimeElapsedRelease(t *testing.T) {
	const releaseAfter = 100 * time.Millisecond

	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 3, HardCap: 5, ReleaseAfter: releaseAfter})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	buf.Go(ctx, src)
	src.push(t, "a")

	b := next(t, buf)
	if since := time.Since(start); since < releaseAfter {
		t.Errorf("released after %v, want at least %v", since, releaseAfter)
	}
	if b.Reason() != TimeElapsed {
		t.Errorf("Reason() = %v, want %v", b.Reason(), TimeElapsed)
	}
	if b.Elapsed() < releaseAfter {
		t.Errorf("Elapsed() = %v, want at least %v", b.Elapsed(), releaseAfter)
	}
	if diff := cmp.Diff([]string{"a"}, b.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_BackoffSuppressesTimeTrigger(t *testing.T) {
	const (
		releaseAfter = 20 * time.Millisecond
		initial      = 200 * time.Millisecond
	)

	newBackoffBuffer := func(t *testing.T, softCap uint) *Buffer[string] {
		return newBuffer(t, Config{
			SoftCap:      softCap,
			HardCap:      5,
			ReleaseAfter: releaseAfter,
			Backoff: &BackoffConfig{
				InitialInterval: initial,
				Multiplier:      2,
				MaxInterval:     time.Second,
			},
		})
	}

	t.Run("time trigger waits for the backoff", func(t *testing.T) {
		src := newTestSource()
		buf := newBackoffBuffer(t, 0)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		buf.Go(ctx, src)

		src.push(t, "a")
		first := next(t, buf)
		if first.Reason() != TimeElapsed {
			t.Fatalf("first Reason() = %v, want %v", first.Reason(), TimeElapsed)
		}

		returnedAt := time.Now()
		if err := first.Return(); err != nil {
			t.Fatalf("Return() error = %v", err)
		}

		state := buf.BackoffState()
		if state.Attempts != 1 {
			t.Errorf("Attempts = %d, want 1", state.Attempts)
		}
		if state.SuppressedUntil.Before(returnedAt.Add(initial)) {
			t.Errorf("SuppressedUntil = %v, want at least %v", state.SuppressedUntil, returnedAt.Add(initial))
		}

		second := next(t, buf)
		if since := time.Since(returnedAt); since < initial {
			t.Errorf("released %v after the return, want at least %v", since, initial)
		}
		if second.Reason() != TimeElapsed {
			t.Errorf("second Reason() = %v, want %v", second.Reason(), TimeElapsed)
		}
		if diff := cmp.Diff([]string{"a"}, second.Items()); diff != "" {
			t.Errorf("Items() mismatch (-want +got):\n%s", diff)
		}

		if err := second.Confirm(); err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if state := buf.BackoffState(); state != (BackoffState{}) {
			t.Errorf("BackoffState() after confirm = %+v, want zero state", state)
		}
	})

	t.Run("soft cap ignores the backoff", func(t *testing.T) {
		src := newTestSource()
		buf := newBackoffBuffer(t, 2)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		buf.Go(ctx, src)

		src.push(t, "a")
		first := next(t, buf)
		if first.Reason() != TimeElapsed {
			t.Fatalf("first Reason() = %v, want %v", first.Reason(), TimeElapsed)
		}

		returnedAt := time.Now()
		if err := first.Return(); err != nil {
			t.Fatalf("Return() error = %v", err)
		}

		src.push(t, "b")
		second := next(t, buf)
		if since := time.Since(returnedAt); since >= initial {
			t.Errorf("released %v after the return, want sooner than %v", since, initial)
		}
		if second.Reason() != SoftCapReached {
			t.Errorf("second Reason() = %v, want %v", second.Reason(), SoftCapReached)
		}
		if diff := cmp.Diff([]string{"a", "b"}, second.Items()); diff != "" {
			t.Errorf("Items() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestBatch_Resolution(t *testing.T) {
	t.Run("confirm is final", func(t *testing.T) {
		src := newTestSource()
		buf := newBuffer(t, Config{SoftCap: 2, HardCap: 5, ReleaseAfter: time.Hour})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		buf.Go(ctx, src)

		src.push(t, "a", "b")
		b := next(t, buf)
		if b.State() != Unresolved {
			t.Errorf("State() = %v, want %v", b.State(), Unresolved)
		}
		if buf.InFlight() != 2 {
			t.Errorf("InFlight() = %d, want 2", buf.InFlight())
		}

		if err := b.Confirm(); err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
		if b.State() != Confirmed {
			t.Errorf("State() = %v, want %v", b.State(), Confirmed)
		}
		if buf.InFlight() != 0 || buf.Len() != 0 {
			t.Errorf("InFlight() = %d, Len() = %d, want 0 and 0", buf.InFlight(), buf.Len())
		}

		for name, resolve := range map[string]func() error{
			"Confirm":       b.Confirm,
			"Return":        b.Return,
			"ReturnOnError": func() error { return b.ReturnOnError(errors.New("late")) },
		} {
			if err := resolve(); !errors.Is(err, ErrAlreadyResolved) {
				t.Errorf("second %s() error = %v, want ErrAlreadyResolved", name, err)
			}
		}
		if b.State() != Confirmed {
			t.Errorf("State() after misuse = %v, want %v", b.State(), Confirmed)
		}

		// The confirmed items are gone for good.
		src.closeWith(nil)
		if err := nextErr(t, buf); err != ErrEndOfStream {
			t.Errorf("Next() error = %v, want ErrEndOfStream", err)
		}
	})

	t.Run("return is final", func(t *testing.T) {
		src := newTestSource()
		buf := newBuffer(t, Config{SoftCap: 1, HardCap: 5, ReleaseAfter: time.Hour})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		buf.Go(ctx, src)

		src.push(t, "a")
		b := next(t, buf)

		if err := b.ReturnOnError(errors.New("downstream unavailable")); err != nil {
			t.Fatalf("ReturnOnError() error = %v", err)
		}
		if b.State() != Returned {
			t.Errorf("State() = %v, want %v", b.State(), Returned)
		}
		if err := b.Confirm(); !errors.Is(err, ErrAlreadyResolved) {
			t.Errorf("Confirm() after return error = %v, want ErrAlreadyResolved", err)
		}

		again := next(t, buf)
		if diff := cmp.Diff([]string{"a"}, again.Items()); diff != "" {
			t.Errorf("Items() mismatch (-want +got):\n%s", diff)
		}
		if again.Seq() != 2 {
			t.Errorf("Seq() = %d, want 2", again.Seq())
		}
	})

	t.Run("items are a copy", func(t *testing.T) {
		src := newTestSource()
		buf := newBuffer(t, Config{SoftCap: 1, HardCap: 5, ReleaseAfter: time.Hour})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		buf.Go(ctx, src)

		src.push(t, "a")
		b := next(t, buf)
		b.Items()[0] = "changed"

		if diff := cmp.Diff([]string{"a"}, b.Items()); diff != "" {
			t.Errorf("Items() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestBuffer_ReturnReinsertsAtFront(t *testing.T) {
	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 2, HardCap: 5, ReleaseAfter: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a", "b")
	first := next(t, buf)

	src.push(t, "c")
	waitFor(t, "c to be queued", func() bool { return buf.Len() == 1 })

	if err := first.Return(); err != nil {
		t.Fatalf("Return() error = %v", err)
	}
	if buf.Len() != 3 || buf.InFlight() != 0 {
		t.Errorf("Len() = %d, InFlight() = %d, want 3 and 0", buf.Len(), buf.InFlight())
	}

	second := next(t, buf)
	if diff := cmp.Diff([]string{"a", "b", "c"}, second.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if second.Reason() != SoftCapReached {
		t.Errorf("Reason() = %v, want %v", second.Reason(), SoftCapReached)
	}
}

func TestBuffer_EndToEnd(t *testing.T) {
	const releaseAfter = 200 * time.Millisecond

	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 3, HardCap: 5, ReleaseAfter: releaseAfter})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "A", "B", "C")
	first := next(t, buf)
	if first.Reason() != SoftCapReached {
		t.Errorf("first Reason() = %v, want %v", first.Reason(), SoftCapReached)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, first.Items()); diff != "" {
		t.Errorf("first Items() mismatch (-want +got):\n%s", diff)
	}
	if err := first.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	src.push(t, "D")
	second := next(t, buf)
	if second.Reason() != TimeElapsed {
		t.Errorf("second Reason() = %v, want %v", second.Reason(), TimeElapsed)
	}
	if diff := cmp.Diff([]string{"D"}, second.Items()); diff != "" {
		t.Errorf("second Items() mismatch (-want +got):\n%s", diff)
	}
	if second.Elapsed() < releaseAfter {
		t.Errorf("second Elapsed() = %v, want at least %v", second.Elapsed(), releaseAfter)
	}
	if err := second.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
}

func TestBuffer_SourceFailure(t *testing.T) {
	srcErr := errors.New("connection reset")

	src := newTestSource()
	buf := newBuffer(t, Config{HardCap: 5, ReleaseAfter: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a", "b")
	src.closeWith(srcErr)

	select {
	case <-buf.Done():
	case <-time.After(time.Second):
		t.Fatal("Done() not closed after the source failed")
	}

	last := next(t, buf)
	if last.Reason() != Shutdown {
		t.Errorf("Reason() = %v, want %v", last.Reason(), Shutdown)
	}
	if diff := cmp.Diff([]string{"a", "b"}, last.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if err := last.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	err := nextErr(t, buf)
	var sourceErr *SourceError
	if !errors.As(err, &sourceErr) {
		t.Fatalf("Next() error = %v, want *SourceError", err)
	}
	if !errors.Is(err, srcErr) {
		t.Errorf("errors.Is(err, srcErr) = false for %v", err)
	}
	if !errors.Is(err, ErrEndOfStream) {
		t.Errorf("errors.Is(err, ErrEndOfStream) = false for %v", err)
	}

	// End of stream is sticky.
	if again := nextErr(t, buf); !errors.Is(again, srcErr) {
		t.Errorf("second Next() error = %v, want the source error again", again)
	}
}

func TestBuffer_ShutdownRespectsBackoff(t *testing.T) {
	const initial = 150 * time.Millisecond

	src := newTestSource()
	buf := newBuffer(t, Config{
		HardCap:      5,
		ReleaseAfter: 50 * time.Millisecond,
		Backoff: &BackoffConfig{
			InitialInterval: initial,
			Multiplier:      2,
			MaxInterval:     time.Second,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a")
	src.closeWith(nil)

	first := next(t, buf)
	if first.Reason() != Shutdown {
		t.Fatalf("Reason() = %v, want %v", first.Reason(), Shutdown)
	}

	returnedAt := time.Now()
	if err := first.Return(); err != nil {
		t.Fatalf("Return() error = %v", err)
	}

	second := next(t, buf)
	if since := time.Since(returnedAt); since < initial {
		t.Errorf("flushed %v after the return, want at least %v", since, initial)
	}
	if second.Reason() != TimeElapsed {
		t.Errorf("Reason() = %v, want %v", second.Reason(), TimeElapsed)
	}
	if diff := cmp.Diff([]string{"a"}, second.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if err := second.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}

	if err := nextErr(t, buf); err != ErrEndOfStream {
		t.Errorf("Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestBuffer_ReturnAfterShutdownWaitsReleaseAfter(t *testing.T) {
	const releaseAfter = 100 * time.Millisecond

	src := newTestSource()
	buf := newBuffer(t, Config{HardCap: 5, ReleaseAfter: releaseAfter})
	buf.Go(context.Background(), src)

	src.push(t, "a")
	src.closeWith(nil)

	select {
	case <-buf.Done():
	case <-time.After(time.Second):
		t.Fatal("Done() not closed after the source ended")
	}

	start := time.Now()
	first := next(t, buf)
	if first.Reason() != Shutdown {
		t.Fatalf("Reason() = %v, want %v", first.Reason(), Shutdown)
	}
	if err := first.Return(); err != nil {
		t.Fatalf("Return() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), releaseAfter/2)
	defer cancel()
	if b, err := buf.Next(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Next() = %v, %v before ReleaseAfter, want context.DeadlineExceeded", b, err)
	}

	second := next(t, buf)
	if since := time.Since(start); since < releaseAfter {
		t.Errorf("released again %v after the first release, want at least %v", since, releaseAfter)
	}
	if second.Reason() != TimeElapsed {
		t.Errorf("Reason() = %v, want %v", second.Reason(), TimeElapsed)
	}
	if err := second.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if err := nextErr(t, buf); err != ErrEndOfStream {
		t.Errorf("Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestBuffer_NextCanceledContextWithReadyBatch(t *testing.T) {
	src := newTestSource()
	buf := newBuffer(t, Config{HardCap: 5, ReleaseAfter: time.Hour})
	buf.Go(context.Background(), src)

	src.push(t, "a")
	src.closeWith(nil)
	<-buf.Done()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if b, err := buf.Next(ctx); err != context.Canceled {
		t.Fatalf("Next() = %v, %v, want context.Canceled", b, err)
	}
	if got := buf.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	b := next(t, buf)
	if diff := cmp.Diff([]string{"a"}, b.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if err := b.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
}

func TestBuffer_NextCancellation(t *testing.T) {
	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 3, HardCap: 5, ReleaseAfter: time.Hour})

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()
	buf.Go(runCtx, src)

	src.push(t, "a")
	waitFor(t, "a to be queued", func() bool { return buf.Len() == 1 })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	b, err := buf.Next(ctx)
	if b != nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next() = %v, %v, want nil, context.DeadlineExceeded", b, err)
	}

	if buf.Len() != 1 || buf.InFlight() != 0 {
		t.Errorf("Len() = %d, InFlight() = %d, want 1 and 0", buf.Len(), buf.InFlight())
	}
	if state := buf.BackoffState(); state != (BackoffState{}) {
		t.Errorf("BackoffState() = %+v, want zero state", state)
	}

	// The retried call picks up where the canceled one left off.
	src.push(t, "b", "c")
	retried := next(t, buf)
	if diff := cmp.Diff([]string{"a", "b", "c"}, retried.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
	if retried.Seq() != 1 {
		t.Errorf("Seq() = %d, want 1", retried.Seq())
	}
}

func TestBuffer_IntakePausesAtHardCap(t *testing.T) {
	src := newTestSource()
	stats := NewBasicStatsCollector()
	buf := newBuffer(t, Config{SoftCap: 2, HardCap: 2, ReleaseAfter: time.Hour}).WithStats(stats)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a", "b")
	b := next(t, buf)

	// The released items still count until they're resolved.
	if src.tryPush("c", 100*time.Millisecond) {
		t.Fatal("intake read an item while the buffer was full")
	}
	if got := stats.GetStats().IntakeBlocked; got == 0 {
		t.Error("IntakeBlocked = 0, want at least 1")
	}

	if err := b.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !src.tryPush("c", time.Second) {
		t.Fatal("intake did not resume after confirm")
	}
}

func TestBuffer_HardCapNeverExceeded(t *testing.T) {
	const hardCap = 5

	var counter int64
	src := SourceFunc[string](func(ctx context.Context) (string, error) {
		return strconv.FormatInt(atomic.AddInt64(&counter, 1), 10), nil
	})

	stats := NewBasicStatsCollector()
	buf := newBuffer(t, Config{SoftCap: 3, HardCap: hardCap, ReleaseAfter: 5 * time.Millisecond}).WithStats(stats)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	var want int64 = 1
	for i := 0; i < 30; i++ {
		if held := buf.Len() + buf.InFlight(); held > hardCap {
			t.Fatalf("buffer holds %d items, more than %d", held, hardCap)
		}

		b := next(t, buf)
		if b.Len() > hardCap {
			t.Fatalf("batch of %d items, more than %d", b.Len(), hardCap)
		}

		if i%3 == 0 {
			if err := b.Return(); err != nil {
				t.Fatalf("Return() error = %v", err)
			}
			continue
		}

		// Confirmed items come out in order, with nothing skipped.
		for _, item := range b.Items() {
			if item != strconv.FormatInt(want, 10) {
				t.Fatalf("item = %s, want %d", item, want)
			}
			want++
		}
		if err := b.Confirm(); err != nil {
			t.Fatalf("Confirm() error = %v", err)
		}
	}

	if got := stats.GetStats().MaxQueueLength; got > hardCap {
		t.Errorf("MaxQueueLength = %d, want at most %d", got, hardCap)
	}
}

func TestBuffer_ContextCancelEndsIntake(t *testing.T) {
	src := newTestSource()
	buf := newBuffer(t, Config{HardCap: 5, ReleaseAfter: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	buf.Go(ctx, src)

	src.push(t, "a")
	cancel()

	b := next(t, buf)
	if b.Reason() != Shutdown {
		t.Errorf("Reason() = %v, want %v", b.Reason(), Shutdown)
	}
	if err := b.Confirm(); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if err := nextErr(t, buf); err != ErrEndOfStream {
		t.Errorf("Next() error = %v, want ErrEndOfStream", err)
	}
}

func TestBuffer_NilSource(t *testing.T) {
	buf := newBuffer(t, Config{HardCap: 1})
	buf.Go(context.Background(), nil)

	<-buf.Done()
	err := nextErr(t, buf)
	if !errors.Is(err, ErrNilSource) {
		t.Errorf("Next() error = %v, want ErrNilSource", err)
	}
}

func TestBuffer_DoneBeforeGo(t *testing.T) {
	buf := newBuffer(t, Config{HardCap: 1})

	select {
	case <-buf.Done():
	default:
		t.Error("Done() before Go should return a closed channel")
	}
}

func TestBuffer_PanicsAfterGo(t *testing.T) {
	tests := []struct {
		name string
		call func(buf *Buffer[string])
	}{
		{"Go", func(buf *Buffer[string]) { buf.Go(context.Background(), newTestSource()) }},
		{"WithLogger", func(buf *Buffer[string]) { buf.WithLogger(zerolog.Nop()) }},
		{"WithStats", func(buf *Buffer[string]) { buf.WithStats(NewBasicStatsCollector()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			buf := newBuffer(t, Config{HardCap: 1})
			buf.Go(ctx, newTestSource())

			defer func() {
				if recover() == nil {
					t.Errorf("%s after Go did not panic", tt.name)
				}
			}()
			tt.call(buf)
		})
	}
}

func TestBuffer_Logging(t *testing.T) {
	var out syncBuffer
	logger := zerolog.New(&out).Level(zerolog.DebugLevel)

	src := newTestSource()
	buf := newBuffer(t, Config{SoftCap: 1, HardCap: 5, ReleaseAfter: time.Hour}).WithLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	buf.Go(ctx, src)

	src.push(t, "a")
	b := next(t, buf)
	if err := b.ReturnOnError(errors.New("downstream unavailable")); err != nil {
		t.Fatalf("ReturnOnError() error = %v", err)
	}

	logs := out.String()
	for _, want := range []string{
		`"message":"starting intake"`,
		`"message":"released batch"`,
		`"reason":"soft_cap_reached"`,
		`"level":"warn"`,
		`"error":"downstream unavailable"`,
		`"message":"batch returned"`,
	} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %s:\n%s", want, logs)
		}
	}
}

func TestReleaseReason_String(t *testing.T) {
	tests := []struct {
		reason   ReleaseReason
		expected string
	}{
		{SoftCapReached, "soft_cap_reached"},
		{TimeElapsed, "time_elapsed"},
		{Shutdown, "shutdown"},
		{ReleaseReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.reason.String(); got != tt.expected {
				t.Errorf("ReleaseReason.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}
