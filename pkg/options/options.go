// Package options provides the configuration surface for kvsd: the engine's
// on-disk layout and compaction threshold, and the server's network and
// concurrency parameters. It follows the same functional-options shape the
// rest of the project's configuration uses, validated at construction time
// with struct tags rather than hand-rolled range checks.
package options

import (
	"strings"

	"github.com/go-playground/validator/v10"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// Options defines the configurable parameters of a kvsd engine and server.
type Options struct {
	// DataDir is the directory containing the active log and sstable segments.
	DataDir string `validate:"required"`

	// ActiveLogName is the filename of the active append-only log within DataDir.
	ActiveLogName string `validate:"required"`

	// SegmentPrefix names sstable segment files: "<prefix>_<N>".
	SegmentPrefix string `validate:"required"`

	// CompactionThreshold is the record count that triggers compaction once exceeded.
	CompactionThreshold uint64 `validate:"min=1"`

	// Addr is the server's listen address / the client's target address, "IPv4:port".
	Addr string `validate:"required"`

	// FrameSize is the fixed number of bytes read per request on the wire.
	FrameSize int `validate:"min=1"`

	// WorkerCount is the number of workers in the server's thread pool.
	WorkerCount uint `validate:"min=1"`
}

// OptionFunc mutates an Options value.
type OptionFunc func(*Options)

var validate = validator.New()

// Validate runs struct-tag validation and translates the first failure into
// the project's ValidationError taxonomy so callers only ever handle one
// error shape.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok || len(fieldErrs) == 0 {
			return kvserrors.NewConfigurationValidationError("options", err)
		}
		first := fieldErrs[0]
		return kvserrors.NewConfigurationValidationError(first.Field(), err)
	}
	return nil
}

// WithDefaultOptions applies the full set of default configuration values.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		defaults := NewDefaultOptions()
		*o = defaults
	}
}

// WithDataDir sets the directory holding the active log and sstables.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithAddr sets the server listen / client target address.
func WithAddr(addr string) OptionFunc {
	return func(o *Options) {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			o.Addr = addr
		}
	}
}

// WithCompactionThreshold sets the record count that triggers compaction.
func WithCompactionThreshold(threshold uint64) OptionFunc {
	return func(o *Options) {
		if threshold > 0 {
			o.CompactionThreshold = threshold
		}
	}
}

// WithFrameSize sets the fixed per-request frame size, in bytes.
func WithFrameSize(size int) OptionFunc {
	return func(o *Options) {
		if size > 0 {
			o.FrameSize = size
		}
	}
}

// WithWorkerCount sets the server thread pool's worker count.
func WithWorkerCount(count uint) OptionFunc {
	return func(o *Options) {
		if count > 0 {
			o.WorkerCount = count
		}
	}
}

// WithSegmentPrefix sets the filename prefix used for sstable segments.
func WithSegmentPrefix(prefix string) OptionFunc {
	return func(o *Options) {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" {
			o.SegmentPrefix = prefix
		}
	}
}

// Apply builds an Options value from NewDefaultOptions with the given
// overrides layered on top, then validates the result.
func Apply(opts ...OptionFunc) (Options, error) {
	o := NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
