// Package main round-trips a payload through a PostgreSQL large object
// with a deadline.
//
// Large object I/O runs inside a transaction and can stall on a slow or
// contended server, so every read, write, and seek goes through a cancellable
// wrapper around the pgx large object handle. The deadline context is linked
// to the token: when time runs out, the next chunk is refused and the
// transaction rolls back instead of hanging.
//
// Both transfer directions run through cancelrw.Copy, which reports spans to
// an OTLP endpoint (Jaeger or an OpenTelemetry Collector) and log lines to
// stderr through the slog bridge.
//
// Configuration comes from PGBLOB_* environment variables:
//
//	PGBLOB_DATABASE_URL   connection string (default local test database)
//	PGBLOB_TIMEOUT        round-trip deadline (default 10s)
//	PGBLOB_PAYLOAD_BYTES  payload size (default 1 MiB)
//	PGBLOB_OTLP_ENDPOINT  trace exporter endpoint (default localhost:4317)
package main
