package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/kvsd/internal/record"
)

func TestDiscoverSortsByIntegerNotLexicographic(t *testing.T) {
	dir := t.TempDir()

	for _, n := range []int{2, 10, 1} {
		require.NoError(t, os.WriteFile(segmentPath(dir, "sstable", n), nil, 0644))
	}

	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)
	require.Equal(t, 3, segs.Len())
	require.Equal(t, 10, segs.Newest())
	require.Equal(t, []int{10, 2, 1}, segs.NewestFirst())
}

func TestDiscoverIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(segmentPath(dir, "sstable", 0), nil, 0644))
	require.NoError(t, os.WriteFile(segmentPath(dir, "sstable", 1), nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/log.txt", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/sstable_not_a_number", nil, 0644))

	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)
	require.Equal(t, 2, segs.Len())
}

func TestWriteReadSegmentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := segmentPath(dir, "sstable", 0)

	records := []record.Record{
		record.NewSet("a", "1"),
		record.NewSet("b", "2"),
		record.NewRemove("c"),
	}
	require.NoError(t, WriteSegment(path, records))

	got, err := ReadSegment(path)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestSegmentSetAdd(t *testing.T) {
	dir := t.TempDir()
	segs, err := Discover(dir, "sstable")
	require.NoError(t, err)
	require.Equal(t, 0, segs.Len())
	require.Equal(t, -1, segs.Newest())

	segs.Add(0)
	segs.Add(2)
	segs.Add(1)
	require.Equal(t, []int{2, 1, 0}, segs.NewestFirst())
	require.Equal(t, 2, segs.Newest())
}
