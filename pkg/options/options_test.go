package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyStartsFromDefaults(t *testing.T) {
	opts, err := Apply()
	require.NoError(t, err)
	require.Equal(t, NewDefaultOptions(), opts)
}

func TestApplyLayersOverridesOnDefaults(t *testing.T) {
	opts, err := Apply(
		WithDataDir("/tmp/kvsd"),
		WithAddr("127.0.0.1:9000"),
		WithCompactionThreshold(500),
		WithFrameSize(256),
		WithWorkerCount(8),
		WithSegmentPrefix("seg"),
	)
	require.NoError(t, err)

	require.Equal(t, "/tmp/kvsd", opts.DataDir)
	require.Equal(t, "127.0.0.1:9000", opts.Addr)
	require.Equal(t, uint64(500), opts.CompactionThreshold)
	require.Equal(t, 256, opts.FrameSize)
	require.Equal(t, uint(8), opts.WorkerCount)
	require.Equal(t, "seg", opts.SegmentPrefix)
}

func TestBlankOverridesAreIgnored(t *testing.T) {
	opts, err := Apply(WithDataDir("   "), WithAddr(""), WithSegmentPrefix(""))
	require.NoError(t, err)
	require.Equal(t, DefaultDataDir, opts.DataDir)
	require.Equal(t, DefaultAddr, opts.Addr)
	require.Equal(t, DefaultSegmentPrefix, opts.SegmentPrefix)
}

func TestZeroOverridesAreIgnored(t *testing.T) {
	opts, err := Apply(WithCompactionThreshold(0), WithFrameSize(0), WithWorkerCount(0))
	require.NoError(t, err)
	require.Equal(t, DefaultCompactionThreshold, opts.CompactionThreshold)
	require.Equal(t, DefaultFrameSize, opts.FrameSize)
	require.Equal(t, DefaultWorkerCount, opts.WorkerCount)
}

func TestValidateRejectsEmptyDataDir(t *testing.T) {
	o := NewDefaultOptions()
	o.DataDir = ""
	require.Error(t, o.Validate())
}
