package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamNilotpal/kvsd/internal/record"
)

func appendRecord(t *testing.T, log *Log, rec record.Record) {
	t.Helper()
	b, err := record.Encode(rec)
	require.NoError(t, err)
	_, err = log.Append(b)
	require.NoError(t, err)
}

func TestCompactWritesSegmentAndTrimsLog(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenLog(filepath.Join(dir, "log.txt"), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer log.Close()

	appendRecord(t, log, record.NewSet("a", "1"))
	appendRecord(t, log, record.NewSet("b", "2"))
	appendRecord(t, log, record.NewSet("a", "3"))
	appendRecord(t, log, record.NewRemove("b"))
	appendRecord(t, log, record.NewSet("c", "unabsorbed"))

	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)

	require.NoError(t, Compact(log, segs, 4))

	require.Equal(t, 1, segs.Len())
	records, err := ReadSegment(segs.Path(0))
	require.NoError(t, err)

	byKey := make(map[string]record.Record)
	for _, r := range records {
		byKey[r.Key] = r
	}
	require.Len(t, byKey, 1)
	require.Equal(t, "3", byKey["a"].Value)
	_, hasB := byKey["b"]
	require.False(t, hasB)

	tail, err := log.ReadAll()
	require.NoError(t, err)

	var tailKeys []string
	err = record.Scan(bytes.NewReader(tail), 0, func(rec record.Record, _, _ int64) error {
		tailKeys = append(tailKeys, rec.Key)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"c"}, tailKeys)
}

func TestCompactAbsorbsWholeLogWhenThresholdExceedsRecordCount(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenLog(filepath.Join(dir, "log.txt"), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer log.Close()

	appendRecord(t, log, record.NewSet("a", "1"))

	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)

	require.NoError(t, Compact(log, segs, 10))
	require.Equal(t, 1, segs.Len())

	tail, err := log.ReadAll()
	require.NoError(t, err)
	require.Empty(t, tail)
}

func TestCompactIsNoOpOnEmptyLog(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenLog(filepath.Join(dir, "log.txt"), zap.NewNop().Sugar())
	require.NoError(t, err)
	defer log.Close()

	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)

	require.NoError(t, Compact(log, segs, 10))
	require.Equal(t, 0, segs.Len())
}
