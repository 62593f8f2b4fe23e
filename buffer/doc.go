// Package buffer contains the release buffer. The main type is Buffer, which
// can be created using New. It pulls items one at a time from a Source
// implementation, holds at most HardCap of them, and hands them to a single
// consumer in batches. Some Source implementations are provided in the source
// package, and consumer helpers are provided in the processor package.
//
// Buffer uses SoftCap, HardCap and ReleaseAfter from Config to decide when a
// batch is released:
//
//   - SoftCap: once that many items are buffered, they are released right away.
//   - ReleaseAfter: once that much time has passed since the previous release,
//     whatever is buffered is released.
//   - HardCap: the buffer never holds more than this many items, counting the
//     items of a released batch that has not been resolved yet. Intake pauses
//     until space frees up.
//
// When both triggers hold at once, the release is reported as SoftCapReached.
//
// Every Batch must be resolved exactly once. Confirm discards the items.
// Return puts them back at the front of the buffer, ahead of anything read
// since, and arms the backoff configured in Config.Backoff. While the backoff
// is suppressing, the ReleaseAfter trigger is ignored; the SoftCap trigger
// stays active.
//
// A typical consumer loop looks like this:
//
//	buf, err := buffer.New[string](cfg)
//	if err != nil {
//		return err
//	}
//	buf.Go(ctx, src)
//
//	for {
//		b, err := buf.Next(ctx)
//		if errors.Is(err, buffer.ErrEndOfStream) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//
//		if err := send(b.Items()); err != nil {
//			_ = b.ReturnOnError(err)
//			continue
//		}
//		_ = b.Confirm()
//	}
//
// Next must not be called again before the batch it returned is resolved.
package buffer
