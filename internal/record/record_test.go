package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := NewSet("foo", "bar")
	b, err := Encode(rec)
	require.NoError(t, err)

	got, err := DecodeOne(b)
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestScanRecoversByteSpans(t *testing.T) {
	recs := []Record{
		NewSet("a", "1"),
		NewSet("b", "2"),
		NewRemove("a"),
	}

	var buf strings.Builder
	for _, r := range recs {
		b, err := Encode(r)
		require.NoError(t, err)
		buf.Write(b)
	}

	var got []Record
	var spans [][2]int64
	err := Scan(strings.NewReader(buf.String()), 0, func(rec Record, begin, end int64) error {
		got = append(got, rec)
		spans = append(spans, [2]int64{begin, end})
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, recs, got)

	for _, span := range spans {
		slice := buf.String()[span[0]:span[1]]
		rec, err := DecodeOne([]byte(slice))
		require.NoError(t, err)
		require.Contains(t, recs, rec)
	}
}

func TestScanBaseOffset(t *testing.T) {
	rec := NewSet("k", "v")
	b, err := Encode(rec)
	require.NoError(t, err)

	const base = int64(1000)
	var gotBegin, gotEnd int64
	err = Scan(strings.NewReader(string(b)), base, func(_ Record, begin, end int64) error {
		gotBegin, gotEnd = begin, end
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, base, gotBegin)
	require.Equal(t, base+int64(len(b)), gotEnd)
}

func TestScanStopsEarly(t *testing.T) {
	var buf strings.Builder
	for i := 0; i < 5; i++ {
		b, err := Encode(NewSet("k", "v"))
		require.NoError(t, err)
		buf.Write(b)
	}

	count := 0
	err := Scan(strings.NewReader(buf.String()), 0, func(rec Record, begin, end int64) error {
		count++
		if count == 2 {
			return ErrStopScan
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
