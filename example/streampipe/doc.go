// Package main is a streaming pipeline built on cancellable writers.
//
// A producer goroutine emits rate-limited JSON events into a pipe, and the
// main goroutine drains the pipe into a gzip-compressed file with
// cancelrw.Copy. Both sides share one cancellation token:
//   - SIGINT/SIGTERM and the optional -duration deadline cancel it through
//     a linked context,
//   - a guard in the producer cancels it if the producer exits early,
//   - the gated writers on both sides refuse their next write once it is
//     cancelled, so the pipeline stops within one event.
//
// Configuration comes from STREAMPIPE_* environment variables with flag
// overrides, and the token logs through zap.
//
// Usage:
//
//	# Run until interrupted
//	./streampipe
//
//	# Run for ten seconds, then stop cooperatively
//	./streampipe -duration 10s
package main
