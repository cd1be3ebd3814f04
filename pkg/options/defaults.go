package options

const (
	// DefaultDataDir is the directory kvsd uses when none is configured -
	// the server's current working directory, per the wire spec's
	// "environment" contract.
	DefaultDataDir = "."

	// DefaultActiveLogName is the fixed filename of the active append-only log.
	DefaultActiveLogName = "log.txt"

	// DefaultSegmentPrefix names sstable segment files: "sstable_<N>".
	DefaultSegmentPrefix = "sstable"

	// DefaultCompactionThreshold is the record count above which index-replay
	// triggers a compaction pass.
	DefaultCompactionThreshold uint64 = 2000

	// DefaultAddr is the default server/client address.
	DefaultAddr = "127.0.0.1:4000"

	// DefaultFrameSize is the fixed number of bytes read per request.
	DefaultFrameSize = 100

	// DefaultWorkerCount is the server's default thread pool size.
	DefaultWorkerCount uint = 16
)

// NewDefaultOptions returns the default configuration for a kvsd instance.
func NewDefaultOptions() Options {
	return Options{
		DataDir:             DefaultDataDir,
		ActiveLogName:       DefaultActiveLogName,
		SegmentPrefix:       DefaultSegmentPrefix,
		CompactionThreshold: DefaultCompactionThreshold,
		Addr:                DefaultAddr,
		FrameSize:           DefaultFrameSize,
		WorkerCount:         DefaultWorkerCount,
	}
}
