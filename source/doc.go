// Package source contains several implementations of the buffer.Source
// interface for common data source scenarios, including:
//
// - Channel: For using existing channels as sources
// - Error: For yielding fixed items and then failing (Slice ends cleanly)
// - Nil: For testing timing behavior without emitting data
// - Throttle: For rate limiting another source
// - Redis: For popping items off a Redis list
//
// Each source returns ctx.Err() once its context is done, and io.EOF when it
// has no more items to give.
//
// Basic usage of the Channel source:
//
//	input := make(chan string, 2)
//	input <- "a"
//	input <- "b"
//	close(input)
//
//	src := &source.Channel[string]{Input: input}
//	buf.Go(ctx, src)
package source
