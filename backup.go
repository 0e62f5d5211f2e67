// Backup: streaming export/import of a store's live key space, for the
// "kvs export"/"kvs import" CLI subcommands described in SPEC_FULL.md §10.
//
// Unlike the teacher's compress.go, which compresses small per-record
// history blobs with EncodeAll/DecodeAll and wraps them in ascii85 for
// inline JSON embedding, a backup stream is a single large byte stream
// with no embedding constraint, so this uses zstd's streaming
// io.Writer/io.Reader wrappers instead.
package kvs

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// backupEntry is the line-delimited JSON shape written to an export
// stream. It is deliberately distinct from record: a backup is a
// snapshot of live key/value pairs, not a replayable log of commands.
type backupEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Export writes every live key/value pair to w as a zstd-compressed,
// newline-delimited JSON stream, in ascending key order.
func (s *Store) Export(w io.Writer) error {
	if s.closed {
		return ErrClosed
	}

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(zw)
	for _, key := range s.idx.sorted() {
		value, ok, err := s.Get(key)
		if err != nil {
			_ = zw.Close()
			return err
		}
		if !ok {
			// Compacted out or removed between sorted() and Get; skip.
			continue
		}
		if err := enc.Encode(backupEntry{Key: key, Value: value}); err != nil {
			_ = zw.Close()
			return err
		}
	}

	return zw.Close()
}

// Import reads a stream produced by Export and applies each entry with
// Set, overwriting any existing value for the same key. It does not
// clear the store first: importing into a non-empty store merges.
func (s *Store) Import(r io.Reader) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	var n int
	dec := json.NewDecoder(bufio.NewReader(zr))
	for {
		var entry backupEntry
		if err := dec.Decode(&entry); err != nil {
			if err == io.EOF {
				break
			}
			return n, fmt.Errorf("kvs: import: %w", err)
		}
		if err := s.Set(entry.Key, entry.Value); err != nil {
			return n, err
		}
		n++
	}

	return n, nil
}
