// Package processor contains consumer-side helpers for a buffer.Buffer: the
// Processor interface, the Drain loop that runs a Processor on every released
// batch, and several Processor implementations:
//
// - Nil: For testing timing behavior while discarding items
// - Error: For failing every batch so it is returned
// - Channel: For forwarding items to a channel
// - Collector: For keeping every item for later inspection
// - LoggingProcessor: For logging around another Processor
// - RedisPush: For appending every batch to a Redis list
//
// A Processor only sees the items. Drain resolves the batch from the result:
// nil confirms it, an error returns it to the buffer.
package processor
