// Engine façade: Open, Set, Get, Remove, Close.
//
// Each mutating call serialises one record, appends it to the active
// log, then updates the index; each read call looks up the index,
// seeks the appropriate reader, and decodes one record. After every
// mutation the engine checks whether accumulated stale bytes have reached
// Config.CompactionThreshold and, if so, synchronously compacts before
// returning — exactly the control flow spec.md §2 describes.
package kvs

import (
	"fmt"
	"os"
)

// Store is an open key/value database directory. It is not safe for
// concurrent use: the engine is single-writer and single-threaded by
// contract (spec.md §5) — callers must serialise their own access to
// one Store.
type Store struct {
	dir    string
	config Config
	lock   *dirLock

	activeGen uint64
	writer    *posWriter
	readers   map[uint64]*posReader

	idx        *index
	staleBytes int64

	closed bool
}

// Open opens or creates a database directory at dir. On return, every
// existing generation has been replayed into the index, a fresh
// generation is active for new writes, and the directory is locked
// against a second concurrent Store.
func Open(dir string, config Config) (*Store, error) {
	config = config.withDefaults()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	lock, err := acquireLock(dir)
	if err != nil {
		return nil, err
	}

	if err := writeEngineMarker(dir); err != nil {
		_ = lock.release()
		return nil, err
	}

	gens, err := listGenerations(dir)
	if err != nil {
		_ = lock.release()
		return nil, err
	}

	idx := newIndex()
	readers, staleBytes, err := replay(dir, gens, idx, config.ReadBuffer)
	if err != nil {
		_ = lock.release()
		return nil, err
	}

	activeGen := uint64(1)
	if len(gens) > 0 {
		activeGen = gens[len(gens)-1] + 1
	}

	writer, activeReader, err := createGeneration(dir, activeGen, config)
	if err != nil {
		for _, r := range readers {
			_ = r.close()
		}
		_ = lock.release()
		return nil, err
	}
	readers[activeGen] = activeReader

	config.Logger.Debug("kvs: opened",
		"dir", dir, "generations", len(gens), "active_gen", activeGen,
		"keys", idx.len(), "stale_bytes", staleBytes)

	return &Store{
		dir:        dir,
		config:     config,
		lock:       lock,
		activeGen:  activeGen,
		writer:     writer,
		readers:    readers,
		idx:        idx,
		staleBytes: staleBytes,
	}, nil
}

// createGeneration creates (or opens, for replay-adjacent callers)
// generation gen's log file and returns both a writer and a reader for
// it. The writer is opened append+create per spec.md §4.2; the reader
// is a second, independent read-only handle, matching the teacher's
// new_log_file pattern of separate File.Open calls for reader vs.
// writer.
func createGeneration(dir string, gen uint64, config Config) (*posWriter, *posReader, error) {
	path := logPath(dir, gen)

	wf, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	writer, err := newPosWriter(wf, config.ReadBuffer, config.SyncWrites)
	if err != nil {
		wf.Close()
		return nil, nil, err
	}

	rf, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		writer.close()
		return nil, nil, err
	}
	reader, err := newPosReader(rf, config.ReadBuffer)
	if err != nil {
		writer.close()
		rf.Close()
		return nil, nil, err
	}

	return writer, reader, nil
}

// Set creates or overwrites the value of key. If total stale bytes now
// meet Config.CompactionThreshold, Set compacts synchronously before
// returning.
func (s *Store) Set(key, value string) error {
	if s.closed {
		return ErrClosed
	}

	buf, err := encode(setRecord(key, value))
	if err != nil {
		return err
	}

	start, err := s.writer.append(buf)
	if err != nil {
		return err
	}
	length := s.writer.position() - start

	// The index is only mutated after a successful append (write +
	// flush): a failed write above returns before this line, so no
	// index entry can ever point at a partially-written record.
	if prev, existed := s.idx.set(key, location{gen: s.activeGen, offset: start, length: length}); existed {
		s.staleBytes += prev.length
	}

	return s.maybeCompact()
}

// Get returns the current value of key, and whether it exists.
func (s *Store) Get(key string) (string, bool, error) {
	if s.closed {
		return "", false, ErrClosed
	}

	loc, ok := s.idx.get(key)
	if !ok {
		return "", false, nil
	}

	reader, ok := s.readers[loc.gen]
	if !ok {
		return "", false, fmt.Errorf("kvs: no open reader for generation %d", loc.gen)
	}
	if _, err := reader.seek(loc.offset); err != nil {
		return "", false, err
	}
	buf, err := reader.readExact(int(loc.length))
	if err != nil {
		return "", false, err
	}

	rec, err := decodeOne(buf)
	if err != nil {
		return "", false, err
	}
	if !rec.isSet() {
		// Invariant 1 says the index only ever points at a live Set
		// record. Landing on a Remove here means the index and the
		// log have diverged.
		return "", false, ErrUnexpectedCommandType
	}
	return rec.Value, true, nil
}

// Remove deletes key. Returns ErrKeyNotFound if key has no live
// record. Like Set, a successful Remove may trigger synchronous
// compaction before returning.
func (s *Store) Remove(key string) error {
	if s.closed {
		return ErrClosed
	}

	prevLoc, existed := s.idx.get(key)
	if !existed {
		return ErrKeyNotFound
	}

	buf, err := encode(removeRecord(key))
	if err != nil {
		return err
	}

	start, err := s.writer.append(buf)
	if err != nil {
		return err
	}
	length := s.writer.position() - start

	s.idx.remove(key)
	// Both the retired Set record and the new Remove record are stale.
	s.staleBytes += prevLoc.length + length

	return s.maybeCompact()
}

func (s *Store) maybeCompact() error {
	if s.staleBytes >= s.config.CompactionThreshold {
		return s.compact()
	}
	return nil
}

// Close closes every open file handle and releases the directory
// lock. The database directory and its generation files persist.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	record(s.writer.flush())
	record(s.writer.close())
	for _, r := range s.readers {
		record(r.close())
	}
	record(s.lock.release())

	return firstErr
}
