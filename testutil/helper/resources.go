package helper

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"
)

// GivenTestContent returns deterministic pseudo-random content of the given
// size, so tests can compare streams byte for byte.
func GivenTestContent(t testing.TB, size int) []byte {
	t.Helper()

	content := make([]byte, size)
	rng := rand.New(rand.NewPCG(42, uint64(size)))
	for i := range content {
		content[i] = byte(rng.UintN(256))
	}

	return content
}

// RecordingReader is an in-memory reader that counts how often its methods
// are called, for verifying that gated wrappers stop delegating.
type RecordingReader struct {
	data       []byte
	pos        int
	ReadCalls  int
	CloseCalls int
}

// NewRecordingReader creates a RecordingReader serving the given data.
func NewRecordingReader(data []byte) *RecordingReader {
	return &RecordingReader{data: data}
}

// Read serves the next chunk of data and io.EOF once it is exhausted.
func (r *RecordingReader) Read(p []byte) (int, error) {
	r.ReadCalls++

	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	n := copy(p, r.data[r.pos:])
	r.pos += n

	return n, nil
}

// Close implements io.Closer and counts the call.
func (r *RecordingReader) Close() error {
	r.CloseCalls++
	return nil
}

// RecordingWriter is an in-memory writer that counts calls and can be
// configured to fail.
type RecordingWriter struct {
	Written          []byte
	WriteCalls       int
	WriteStringCalls int
	FlushCalls       int
	CloseCalls       int
	FailWith         error // when set, Write and WriteString return it
}

// NewRecordingWriter creates an empty RecordingWriter.
func NewRecordingWriter() *RecordingWriter {
	return &RecordingWriter{}
}

// Write appends p to Written, or fails with FailWith when configured.
func (w *RecordingWriter) Write(p []byte) (int, error) {
	w.WriteCalls++

	if w.FailWith != nil {
		return 0, w.FailWith
	}

	w.Written = append(w.Written, p...)

	return len(p), nil
}

// WriteString implements io.StringWriter so delegation to it is observable.
func (w *RecordingWriter) WriteString(s string) (int, error) {
	w.WriteStringCalls++

	if w.FailWith != nil {
		return 0, w.FailWith
	}

	w.Written = append(w.Written, s...)

	return len(s), nil
}

// Flush counts the call and succeeds.
func (w *RecordingWriter) Flush() error {
	w.FlushCalls++
	return nil
}

// Close implements io.Closer and counts the call.
func (w *RecordingWriter) Close() error {
	w.CloseCalls++
	return nil
}

// RecordingFile is an in-memory io.ReadWriteSeeker with call counters,
// standing in for an os.File in wrapper tests.
type RecordingFile struct {
	Content    []byte
	pos        int64
	ReadCalls  int
	WriteCalls int
	SeekCalls  int
	CloseCalls int
}

// NewRecordingFile creates a RecordingFile with the given initial content,
// positioned at the start.
func NewRecordingFile(content []byte) *RecordingFile {
	return &RecordingFile{Content: content}
}

// Read serves content from the current position.
func (f *RecordingFile) Read(p []byte) (int, error) {
	f.ReadCalls++

	if f.pos >= int64(len(f.Content)) {
		return 0, io.EOF
	}

	n := copy(p, f.Content[f.pos:])
	f.pos += int64(n)

	return n, nil
}

// Write writes at the current position, growing the content as needed.
func (f *RecordingFile) Write(p []byte) (int, error) {
	f.WriteCalls++

	end := f.pos + int64(len(p))
	if end > int64(len(f.Content)) {
		grown := make([]byte, end)
		copy(grown, f.Content)
		f.Content = grown
	}

	copy(f.Content[f.pos:end], p)
	f.pos = end

	return len(p), nil
}

// Seek repositions like a file would, including error cases.
func (f *RecordingFile) Seek(offset int64, whence int) (int64, error) {
	f.SeekCalls++

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.pos + offset
	case io.SeekEnd:
		abs = int64(len(f.Content)) + offset
	default:
		return 0, errors.New("invalid whence")
	}

	if abs < 0 {
		return 0, errors.New("negative position")
	}

	f.pos = abs

	return abs, nil
}

// Close implements io.Closer and counts the call.
func (f *RecordingFile) Close() error {
	f.CloseCalls++
	return nil
}
