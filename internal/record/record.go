// Package record defines the durable unit of the active log and sstable
// segments: a command record, JSON-encoded and concatenated with no
// separators. A forward scan over a byte stream recovers each record's exact
// span because encoding/json-shaped decoders (and goccy/go-json, used here)
// stop consuming input the instant a JSON value closes - there is no need for
// newline or length-prefix framing on disk.
package record

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// Action identifies what a Record does to a key.
type Action string

const (
	// Set persists key with the given value, live, overwriting any prior value.
	Set Action = "set"
	// Remove marks key as deleted - a tombstone, absorbed by the next compaction.
	Remove Action = "rm"
)

// Record is the unit of durable information: one command against one key.
// Value is the empty string for a Remove record.
type Record struct {
	Action Action `json:"action"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

// NewSet builds a Set record.
func NewSet(key, value string) Record {
	return Record{Action: Set, Key: key, Value: value}
}

// NewRemove builds a Remove (tombstone) record.
func NewRemove(key string) Record {
	return Record{Action: Remove, Key: key}
}

// Encode serializes r as a self-delimiting JSON object with no trailing
// separator, so it can be concatenated directly onto the active log or a
// segment file.
func Encode(r Record) ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeSerde, "failed to encode command record").
			WithDetail("key", r.Key).WithDetail("action", string(r.Action))
	}
	return b, nil
}

// ErrStopScan is returned by a Scan callback to halt iteration early without
// signaling failure - used by compaction, which only needs to absorb records
// up to a threshold rather than the whole file.
var ErrStopScan = fmt.Errorf("record: stop scan")

// Scan reads every record from r, invoking fn with each record and the
// absolute byte offset range [begin, end) it occupies within r, relative to
// baseOffset (the position r's first byte occupies in the underlying file).
// It stops at the first decode error other than io.EOF. If fn returns
// ErrStopScan, Scan stops and returns nil immediately.
func Scan(r io.Reader, baseOffset int64, fn func(rec Record, begin, end int64) error) error {
	dec := json.NewDecoder(r)

	var cursor int64
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return nil
			}
			return kvserrors.NewStorageError(err, kvserrors.ErrorCodeSerde, "failed to decode command record").
				WithOffset(baseOffset + cursor)
		}

		end := dec.InputOffset()
		begin := baseOffset + cursor
		if err := fn(rec, begin, baseOffset+end); err != nil {
			if err == ErrStopScan {
				return nil
			}
			return err
		}
		cursor = end
	}
}

// DecodeOne decodes exactly one record from b, returning an error if b
// contains anything other than a single record (used on the fast index
// lookup path, where the index already gives an exact [begin, end) span).
func DecodeOne(b []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Record{}, kvserrors.NewStorageError(err, kvserrors.ErrorCodeSerde, "failed to decode command record").
			WithDetail("bytes", len(b))
	}
	return rec, nil
}

// String renders a record for logging.
func (r Record) String() string {
	return fmt.Sprintf("%s(%q)", r.Action, r.Key)
}
