// Package engine implements the log-structured storage engine: the active
// log, the in-memory index, sstable segments, and compaction, coordinated
// behind one mutex per the project's concurrency model (§5 of the design
// notes - one critical section per operation, not a lock per field).
package engine

import (
	stdErrors "errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/iamNilotpal/kvsd/internal/index"
	"github.com/iamNilotpal/kvsd/internal/record"
	"github.com/iamNilotpal/kvsd/internal/storage"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
	"github.com/iamNilotpal/kvsd/pkg/filesys"
	"github.com/iamNilotpal/kvsd/pkg/options"
)

// ErrEngineClosed is returned by any operation performed after Close has
// already run against this handle (or any of its clones - Close is shared
// state, not per-handle).
var ErrEngineClosed = stdErrors.New("engine: operation failed: cannot access closed engine")

// KVEngine is the capability set every backend exposes: set, get, remove
// over a cloneable, thread-safe handle. The interface is kept even though
// this module only ships one implementation, so an alternative backend can
// be slotted in without touching internal/server or internal/client.
type KVEngine interface {
	Set(key, value string) error
	Get(key string) (string, bool, error)
	Remove(key string) error
	Clone() KVEngine
	Close() error
}

// sharedState is the state every clone of an Engine handle refers to. It is
// guarded by a single mutex: the active log, the index, the replay cursor,
// the absorbed-record counter, and the segment list all move together
// inside one critical section per operation.
type sharedState struct {
	mu sync.Mutex

	dataDir       string
	segmentPrefix string
	threshold     uint64

	log      *storage.Log
	index    *index.Index
	segments *storage.SegmentSet

	cursor  int64
	counter uint64

	closed atomic.Bool
	logger *zap.SugaredLogger
}

// Engine is a cloneable handle onto shared log-structured storage. It holds
// nothing but a pointer, so Clone is a cheap struct copy: every clone sees
// the same index and operates on the same active log file, exactly the
// shared-ownership semantics the design notes call for.
type Engine struct {
	s *sharedState
}

// Config bundles the dependencies needed to open an Engine.
type Config struct {
	Options options.Options
	Logger  *zap.SugaredLogger
}

// New opens (creating if necessary) the store directory named by
// cfg.Options.DataDir: it ensures the directory exists, discovers and sorts
// existing sstable segments, opens the active log, and replays it to rebuild
// the index - the lifecycle the design notes specify for a fresh handle.
func New(cfg Config) (Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	dataDir := cfg.Options.DataDir
	if err := filesys.CreateDir(dataDir, 0755, true); err != nil {
		return Engine{}, kvserrors.ClassifyDirectoryCreationError(err, dataDir)
	}

	segments, err := storage.Discover(dataDir, cfg.Options.SegmentPrefix)
	if err != nil {
		return Engine{}, err
	}

	logPath := filepath.Join(dataDir, cfg.Options.ActiveLogName)
	log, err := storage.OpenLog(logPath, logger)
	if err != nil {
		return Engine{}, err
	}

	s := &sharedState{
		dataDir:       dataDir,
		segmentPrefix: cfg.Options.SegmentPrefix,
		threshold:     cfg.Options.CompactionThreshold,
		log:           log,
		index:         index.New(),
		segments:      segments,
		logger:        logger,
	}

	e := Engine{s: s}
	if err := e.replayLocked(); err != nil {
		return Engine{}, err
	}
	return e, nil
}

// Set persists key/value, overwriting any previous value. The record is
// appended and the index updated, under the same lock, before Set returns.
func (e Engine) Set(key, value string) error {
	if e.s.closed.Load() {
		return ErrEngineClosed
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	b, err := record.Encode(record.NewSet(key, value))
	if err != nil {
		return err
	}
	if _, err := e.s.log.Append(b); err != nil {
		return err
	}
	return e.replayLocked()
}

// Get returns (value, true, nil) for a live key, (_, false, nil) for an
// unknown or removed key. It never returns ErrKeyNotFound - Remove is the
// only operation that distinguishes a missing key as an error.
func (e Engine) Get(key string) (string, bool, error) {
	if e.s.closed.Load() {
		return "", false, ErrEngineClosed
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if ptr, ok := e.s.index.Lookup(key); ok {
		b, err := e.s.log.ReadRange(ptr.Begin, ptr.End)
		if err != nil {
			return "", false, err
		}
		rec, err := record.DecodeOne(b)
		if err != nil {
			return "", false, err
		}
		return rec.Value, true, nil
	}

	rec, found, err := e.scanSegmentsLocked(key)
	if err != nil {
		return "", false, err
	}
	if !found || rec.Action != record.Set {
		return "", false, nil
	}
	return rec.Value, true, nil
}

// Remove deletes key. If the key is live in the index, a tombstone is
// appended and the entry dropped from the index. If it is not indexed,
// segments are scanned in the same order Get uses; a live set recovered from
// a segment is removed by appending a tombstone. Otherwise it returns
// ErrKeyNotFound.
func (e Engine) Remove(key string) error {
	if e.s.closed.Load() {
		return ErrEngineClosed
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	if _, ok := e.s.index.Lookup(key); !ok {
		rec, found, err := e.scanSegmentsLocked(key)
		if err != nil {
			return err
		}
		if !found || rec.Action != record.Set {
			return kvserrors.NewKeyNotFoundError(key)
		}
	}

	b, err := record.Encode(record.NewRemove(key))
	if err != nil {
		return err
	}
	if _, err := e.s.log.Append(b); err != nil {
		return err
	}
	return e.replayLocked()
}

// Clone returns another handle sharing the same underlying state - the same
// index, the same active log file, the same segment list.
func (e Engine) Clone() KVEngine {
	return Engine{s: e.s}
}

// Close releases the active log file handle shared by every clone of this
// handle. Safe to call from any clone; only the first call does the work.
func (e Engine) Close() error {
	if !e.s.closed.CompareAndSwap(false, true) {
		return nil
	}

	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	return e.s.log.Close()
}

// scanSegmentsLocked walks segments newest-first, returning the latest
// effective record for key. Within a segment, later records override
// earlier ones; across segments, the newest segment wins outright - the
// open question from the design notes, decided and documented in DESIGN.md.
// Callers must already hold s.mu.
func (e Engine) scanSegmentsLocked(key string) (record.Record, bool, error) {
	for _, id := range e.s.segments.NewestFirst() {
		records, err := storage.ReadSegment(e.s.segments.Path(id))
		if err != nil {
			return record.Record{}, false, err
		}

		var last record.Record
		var found bool
		for _, rec := range records {
			if rec.Key == key {
				last = rec
				found = true
			}
		}
		if found {
			return last, true, nil
		}
	}
	return record.Record{}, false, nil
}

// replayLocked seeks to the saved cursor, deserializes every record up to
// the current end of file, applies each to the index, and advances the
// cursor and counter. If the counter exceeds the compaction threshold it
// compacts and replays again from the rewritten log, repeating until the
// counter no longer exceeds the threshold. Callers must already hold s.mu.
func (e Engine) replayLocked() error {
	for {
		tail, err := e.s.log.TailReader(e.s.cursor)
		if err != nil {
			return err
		}

		base := e.s.cursor
		err = record.Scan(tail, base, func(rec record.Record, begin, end int64) error {
			switch rec.Action {
			case record.Set:
				e.s.index.Put(rec.Key, index.Pointer{Begin: begin, End: end})
			case record.Remove:
				e.s.index.Delete(rec.Key)
			}
			e.s.counter++
			e.s.cursor = end
			return nil
		})
		if err != nil {
			return err
		}

		if e.s.counter <= e.s.threshold {
			return nil
		}

		e.s.logger.Debugw("compaction threshold exceeded, compacting", "absorbed", e.s.counter, "threshold", e.s.threshold)
		if err := storage.Compact(e.s.log, e.s.segments, e.s.threshold); err != nil {
			return err
		}
		e.s.cursor = 0
		e.s.counter = 0
		e.s.index.Reset()
	}
}
