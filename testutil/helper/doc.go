// Package helper provides testing utilities and observability spies for cancellable I/O testing.
//
// This package contains shared testing infrastructure including spy implementations
// of the cancelrw observability interfaces for capturing and validating log records,
// metrics, and spans during tests, plus recording reader/writer doubles for verifying
// that gated wrappers stop delegating after cancellation.
package helper
