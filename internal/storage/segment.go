package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/iamNilotpal/kvsd/internal/record"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// SegmentSet tracks the immutable sstable segments living in a data
// directory, ordered oldest to newest by their integer suffix. The original
// sorted segment filenames lexicographically ("sstable_10" < "sstable_2") -
// here the suffix is parsed and sorted as an integer, so segment reads see
// the segments in true creation order.
type SegmentSet struct {
	dataDir string
	prefix  string
	ids     []int
}

// segmentName renders the filename for segment n: "<prefix>_<n>".
func segmentName(prefix string, n int) string {
	return fmt.Sprintf("%s_%d", prefix, n)
}

// segmentPath renders the full path for segment n under dataDir.
func segmentPath(dataDir, prefix string, n int) string {
	return filepath.Join(dataDir, segmentName(prefix, n))
}

// Discover scans dataDir for files named "<prefix>_<N>" and returns a
// SegmentSet holding their N values sorted ascending (oldest first).
func Discover(dataDir, prefix string) (*SegmentSet, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to read data directory").
			WithPath(dataDir)
	}

	want := prefix + "_"
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, want) {
			continue
		}
		suffix := strings.TrimPrefix(name, want)
		n, err := strconv.Atoi(suffix)
		if err != nil {
			// Not a segment file we recognize (could be a stray file with the
			// same prefix) - skip rather than fail discovery over it.
			continue
		}
		ids = append(ids, n)
	}

	sort.Ints(ids)
	return &SegmentSet{dataDir: dataDir, prefix: prefix, ids: ids}, nil
}

// Len returns the number of known segments.
func (s *SegmentSet) Len() int { return len(s.ids) }

// Newest returns the highest segment id present, or -1 if there are none.
func (s *SegmentSet) Newest() int {
	if len(s.ids) == 0 {
		return -1
	}
	return s.ids[len(s.ids)-1]
}

// NewestFirst returns every known segment id ordered newest to oldest - the
// order the engine's segment scan (Get and Remove) reads them in, since
// within a key's history the newest segment's record always wins over older
// ones.
func (s *SegmentSet) NewestFirst() []int {
	out := make([]int, len(s.ids))
	for i, id := range s.ids {
		out[len(s.ids)-1-i] = id
	}
	return out
}

// Path returns the path of segment n.
func (s *SegmentSet) Path(n int) string {
	return segmentPath(s.dataDir, s.prefix, n)
}

// Add registers a freshly-written segment n, keeping ids sorted ascending.
func (s *SegmentSet) Add(n int) {
	i := sort.SearchInts(s.ids, n)
	if i < len(s.ids) && s.ids[i] == n {
		return
	}
	s.ids = append(s.ids, 0)
	copy(s.ids[i+1:], s.ids[i:])
	s.ids[i] = n
}

// ReadSegment decodes every record stored in the segment file at path.
func ReadSegment(path string) ([]record.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to read sstable segment").
			WithPath(path)
	}

	var records []record.Record
	err = record.Scan(strings.NewReader(string(b)), 0, func(rec record.Record, _, _ int64) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// WriteSegment creates a new segment file at path containing records, in the
// order given, and fsyncs it before returning. Compaction always calls this
// before touching the active log (§9), so a crash mid-compaction leaves the
// log as the sole source of truth rather than a half-written segment.
func WriteSegment(path string, records []record.Record) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return kvserrors.ClassifyFileOpenError(err, path, filepath.Base(path))
	}
	defer file.Close()

	for _, rec := range records {
		b, err := record.Encode(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(b); err != nil {
			return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to write sstable segment").
				WithPath(path)
		}
	}

	if err := file.Sync(); err != nil {
		return kvserrors.ClassifySyncError(err, filepath.Base(path), path, 0)
	}
	return nil
}
