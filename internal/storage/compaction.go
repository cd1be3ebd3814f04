package storage

import (
	"bytes"

	"github.com/iamNilotpal/kvsd/internal/record"
)

// Compact runs one compaction pass over log, grounded directly on
// original_source's compact/restore_rest_file/write_into_sstable: rewind the
// log, absorb records into a key -> latest-command map until threshold have
// been consumed, write the map into a new segment, then replace the log with
// whatever tail remains unabsorbed.
//
// Hardened per §9: the new segment is written and fsynced before the log is
// truncated, reversing the original's order, so a crash before the log
// rewrite starts loses at most a redundant segment write. The log rewrite
// itself (truncate, then write the tail) is not atomic; a crash between those
// two steps loses the unabsorbed tail.
//
// The caller (internal/engine) is responsible for resetting its replay
// cursor and record counter to zero and replaying the rewritten log to
// rebuild the index - Compact only touches files, not the index, since the
// engine's single mutex is what serializes index mutation with everything
// else.
func Compact(log *Log, segments *SegmentSet, threshold uint64) error {
	data, err := log.ReadAll()
	if err != nil {
		return err
	}

	survivors := make(map[string]record.Record)
	var absorbed uint64
	var boundary int64

	err = record.Scan(bytes.NewReader(data), 0, func(rec record.Record, _, end int64) error {
		switch rec.Action {
		case record.Set:
			survivors[rec.Key] = rec
		case record.Remove:
			delete(survivors, rec.Key)
		}

		absorbed++
		boundary = end
		if absorbed >= threshold {
			return record.ErrStopScan
		}
		return nil
	})
	if err != nil {
		return err
	}

	if absorbed == 0 {
		return nil
	}

	records := make([]record.Record, 0, len(survivors))
	for _, rec := range survivors {
		records = append(records, rec)
	}

	segmentID := segments.Len()
	if newest := segments.Newest(); newest+1 > segmentID {
		segmentID = newest + 1
	}
	segmentPath := segments.Path(segmentID)
	if err := WriteSegment(segmentPath, records); err != nil {
		return err
	}

	tail := append([]byte(nil), data[boundary:]...)
	if err := log.Rewrite(tail); err != nil {
		return err
	}

	segments.Add(segmentID)
	return nil
}
