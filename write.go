// Positioned writer: a buffered writer over a generation file that
// tracks its own absolute byte offset.
//
// The writer is opened in append+create mode; its initial position
// equals the file's current end. A committed Set record, per the
// engine's durability contract, is one where write returned success
// AND flush returned success — flush is required before the caller's
// index is updated (see store.go), never before.
package kvs

import (
	"bufio"
	"os"
)

// posWriter wraps an *os.File opened for appending with a buffered
// writer and a cached absolute write position.
type posWriter struct {
	f    *os.File
	bw   *bufio.Writer
	pos  int64
	sync bool
}

func newPosWriter(f *os.File, bufSize int, sync bool) (*posWriter, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &posWriter{f: f, bw: bufio.NewWriterSize(f, bufSize), pos: info.Size(), sync: sync}, nil
}

// position returns the absolute offset of the next byte to be written.
func (w *posWriter) position() int64 {
	return w.pos
}

// Write satisfies io.Writer, advancing the tracked position by the
// number of bytes actually written.
func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.bw.Write(p)
	w.pos += int64(n)
	return n, err
}

// flush ensures buffered bytes reach the underlying file, optionally
// followed by fsync when the writer was configured for SyncWrites.
func (w *posWriter) flush() error {
	if err := w.bw.Flush(); err != nil {
		return err
	}
	if w.sync {
		return w.f.Sync()
	}
	return nil
}

// append writes buf and flushes it, returning the absolute offset at
// which buf started. Callers must not mutate their index until this
// returns nil: that is the engine's definition of a committed record.
func (w *posWriter) append(buf []byte) (start int64, err error) {
	start = w.pos
	if _, err = w.Write(buf); err != nil {
		return start, err
	}
	if err = w.flush(); err != nil {
		return start, err
	}
	return start, nil
}

func (w *posWriter) close() error {
	return w.f.Close()
}
