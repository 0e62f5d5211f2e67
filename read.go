// Positioned reader: a buffered reader over a generation file that
// tracks its own absolute byte offset.
//
// The underlying bufio.Reader hides position information behind its
// internal buffer — after buffered reads advance the cursor, the raw
// file descriptor's offset and the logical read position diverge. This
// wrapper tracks the logical position itself and invalidates the
// buffer on every seek, so callers always get byte-accurate offsets.
package kvs

import (
	"bufio"
	"io"
	"os"
)

// posReader wraps an *os.File with a buffered reader and a cached
// absolute read position.
type posReader struct {
	f   *os.File
	br  *bufio.Reader
	pos int64
}

func newPosReader(f *os.File, bufSize int) (*posReader, error) {
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &posReader{f: f, br: bufio.NewReaderSize(f, bufSize), pos: pos}, nil
}

// position returns the absolute offset of the next byte to be read.
func (r *posReader) position() int64 {
	return r.pos
}

// seek repositions the reader to an absolute offset, discarding any
// buffered bytes so the next Read reflects the new position.
func (r *posReader) seek(offset int64) (int64, error) {
	if _, err := r.f.Seek(offset, io.SeekStart); err != nil {
		return 0, err
	}
	r.br.Reset(r.f)
	r.pos = offset
	return r.pos, nil
}

// Read satisfies io.Reader, advancing the tracked position by the
// number of bytes actually read.
func (r *posReader) Read(p []byte) (int, error) {
	n, err := r.br.Read(p)
	r.pos += int64(n)
	return n, err
}

// readExact reads exactly n bytes at the reader's current position.
func (r *posReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// close closes the underlying file handle.
func (r *posReader) close() error {
	return r.f.Close()
}
