// Package sync provides a synchronous, blocking write API built on top of a
// relabuf buffer. Set calls block until the value is written, while the
// writes themselves are batched.
//
// A batch whose write fails is not lost: it is returned to the buffer and
// written again once the buffer's backoff allows it. Callers only see an
// error if their own context is done or the Writer is closed.
//
// Basic usage:
//
//	// Define a function that performs batched writes
//	writeFunc := func(ctx context.Context, data map[string]string) error {
//		// Perform batched database write, API call, etc.
//		return db.BatchSet(ctx, data)
//	}
//
//	writer, err := sync.NewWriter(buffer.Config{
//		SoftCap:      10,
//		HardCap:      100,
//		ReleaseAfter: 50 * time.Millisecond,
//	}, writeFunc, logger)
//	if err != nil {
//		return err
//	}
//	defer writer.Close(ctx)
//
//	// Make synchronous calls that are batched behind the scenes
//	err = writer.Set(ctx, "key1", "value1")
package sync
