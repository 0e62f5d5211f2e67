// Record format and codec.
//
// Every line in a generation file is a single JSON object carrying a
// command tag, a key, an optional value, and a CRC32 checksum of the
// payload. The tag distinguishes Set from Remove without any
// out-of-band framing: two records can sit back to back in the same
// file and the decoder tells them apart purely from the "cmd" field.
//
// Decoding is streaming: decodeStream wraps a json.Decoder over the
// underlying reader and, after every successfully decoded record,
// reports the decoder's InputOffset — the absolute byte position
// immediately after that record. The replayer uses the delta between
// successive offsets as each record's on-disk length.
package kvs

import (
	"hash/crc32"
	"io"

	json "github.com/goccy/go-json"
)

// Command tags. Persisted on disk inside every record; do not renumber.
const (
	cmdSet    = "set"
	cmdRemove = "rm"
)

// record is the on-disk shape of one log entry. Both Set and Remove
// records use this single struct; Value is empty (and CRC omits it)
// for Remove.
type record struct {
	Cmd   string `json:"cmd"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
	CRC   uint32 `json:"crc"`
}

// setRecord builds the on-disk form of a Set command.
func setRecord(key, value string) record {
	r := record{Cmd: cmdSet, Key: key, Value: value}
	r.CRC = checksum(r)
	return r
}

// removeRecord builds the on-disk form of a Remove command.
func removeRecord(key string) record {
	r := record{Cmd: cmdRemove, Key: key}
	r.CRC = checksum(r)
	return r
}

// checksum computes the CRC32 (Castagnoli) of the record's cmd tag,
// key and value, in that order. Because the cmd tag is covered,
// corrupting it alone (turning a Set into a Remove or back) fails
// verification.
func checksum(r record) uint32 {
	c := crc32.New(crc32Table)
	_, _ = io.WriteString(c, r.Cmd)
	_, _ = io.WriteString(c, r.Key)
	_, _ = io.WriteString(c, r.Value)
	return c.Sum32()
}

var crc32Table = crc32.MakeTable(crc32.Castagnoli)

// verify reports whether r's checksum matches its fields.
func (r record) verify() bool {
	return r.CRC == checksum(record{Cmd: r.Cmd, Key: r.Key, Value: r.Value})
}

// isSet and isRemove classify a decoded record by its cmd tag.
func (r record) isSet() bool    { return r.Cmd == cmdSet }
func (r record) isRemove() bool { return r.Cmd == cmdRemove }

// encode serialises r as a single JSON line (including the trailing
// newline) ready to append to a generation file.
func encode(r record) ([]byte, error) {
	buf, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	buf = append(buf, '\n')
	return buf, nil
}

// decodeOne parses a single record from a byte slice that holds exactly
// one JSON line (no surrounding whitespace required). Used by Get to
// decode the bytes located via an index entry.
func decodeOne(data []byte) (record, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return record{}, ErrCorruptRecord
	}
	if !rec.verify() {
		return record{}, ErrCorruptRecord
	}
	return rec, nil
}

// decodedRecord pairs a decoded record with the absolute offset of the
// byte immediately following it, satisfying the codec contract that
// callers can compute record length as offset delta.
type decodedRecord struct {
	rec    record
	offset int64
}

// decodeStream decodes every record in r in order, calling fn with
// each decoded record and the absolute offset (offsetBase plus bytes consumed)
// immediately after it. Decoding stops at the first error other than
// io.EOF; fn is not called for a partially-read trailing record.
//
// offsetBase lets callers decode a section of a larger file (e.g. a
// section reader starting mid-file) while still reporting absolute
// offsets into that larger file.
func decodeStream(r io.Reader, offsetBase int64, fn func(decodedRecord) error) error {
	dec := json.NewDecoder(r)
	for {
		var rec record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return ErrCorruptRecord
		}
		if !rec.verify() {
			return ErrCorruptRecord
		}
		off := offsetBase + dec.InputOffset()
		if err := fn(decodedRecord{rec: rec, offset: off}); err != nil {
			return err
		}
	}
}
