// Package errors is kvsd's unified error taxonomy. It gives every layer -
// index, storage, server, client - a small set of error kinds callers can
// switch on (IoError, SerdeError, KeyNotFound, OtherError, ValidationError)
// while still carrying rich, structured context for logging.
//
// The taxonomy is built around a shared baseError that every domain-specific
// error type embeds. Embedding, rather than a single flat struct, lets each
// domain attach only the context that makes sense for it - a StorageError
// knows which file and offset were involved, an IndexError knows which key
// and operation were in flight - while still supporting errors.Is/As and a
// single Code() for dispatch.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// ErrKeyNotFound is the sentinel comparable with errors.Is for the one
// distinguished failure callers need to branch on: Remove of a key that is
// neither indexed nor recoverable as a live set from any segment.
var ErrKeyNotFound = stdErrors.New("kvsd: key not found")

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError determines if an error is related to storage operations,
// such as log/sstable I/O or disk space issues.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsIndexError identifies errors that occurred during index operations such
// as key lookups or index replay.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// IsKeyNotFound reports whether err is, or wraps, ErrKeyNotFound. This is the
// only error variant the server and client distinguish on the wire.
func IsKeyNotFound(err error) bool {
	return stdErrors.Is(err, ErrKeyNotFound)
}

// AsStorageError extracts StorageError context from an error chain.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsIndexError extracts IndexError context from an error chain.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't have specific codes.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := err.(*ValidationError); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	if ee, ok := err.(*EngineError); ok {
		return ee.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details. Intended for
// structured logging call sites: `log.Errorw(err.Error(), errors.GetErrorDetails(err))`.
func GetErrorDetails(err error) map[string]any {
	if se, ok := AsStorageError(err); ok && se.Details() != nil {
		return se.Details()
	}
	if ie, ok := AsIndexError(err); ok && ie.Details() != nil {
		return ie.Details()
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError analyzes directory creation failures and
// returns appropriate error codes based on the underlying system error.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied, "insufficient permissions to create data directory",
		).WithPath(path).WithDetail("operation", "directory_creation")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "insufficient disk space to create data directory",
				).WithPath(path).WithDetail("operation", "directory_creation")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem",
				).WithPath(path).WithDetail("operation", "directory_creation")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to create data directory").
		WithPath(path).WithDetail("operation", "directory_creation")
}

// ClassifyFileOpenError analyzes file opening failures and returns
// appropriate error codes based on the underlying system error.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied, "insufficient permissions to open file",
		).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "insufficient disk space to create file",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot create file on read-only filesystem",
				).WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open file").
		WithPath(filePath).WithFileName(fileName).WithDetail("operation", "file_open")
}

// ClassifySyncError analyzes fsync failures during the hardened compaction
// path (segment written and synced before the log is truncated).
func ClassifySyncError(err error, fileName, filePath string, offset int64) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "cannot sync file: insufficient disk space",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).WithDetail("operation", "file_sync")
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot sync file: filesystem is read-only",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).WithDetail("operation", "file_sync")
			case syscall.EIO:
				return NewStorageError(
					err, ErrorCodeIO, "I/O error during file sync",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset).WithDetail("operation", "file_sync")
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to sync file to disk").
		WithFileName(fileName).WithPath(filePath).WithOffset(offset).WithDetail("operation", "file_sync")
}
