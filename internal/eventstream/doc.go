// Package eventstream implements the event-stream response transformer: an
// adapter sitting between a byte-oriented asynchronous transport delivering
// framed binary chunks and a consumer-supplied event-oriented asynchronous
// subscriber.
//
// It decodes frames incrementally, dispatches each decoded message to an
// initial-response hook, an event queue, or an error path, and reconciles
// two independently-advertised demand signals (bytes from upstream, events
// from downstream) while preserving exactly-once terminal delivery under
// concurrent cancellation and errors.
package eventstream
