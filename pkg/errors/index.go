package errors

// IndexError provides specialized error handling for index-related operations.
// This structure extends the base error system with index-specific context
// while properly supporting method chaining through all base error methods.
type IndexError struct {
	*baseError
	key       string // Identifies which key was being processed when the error occurred.
	operation string // "Get", "Set", "Remove", "Replay" - the index operation in progress.
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{baseError: NewBaseError(err, code, msg)}
}

// WithDetail adds contextual information while maintaining the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithKey records which key was being processed when the error occurred.
func (ie *IndexError) WithKey(key string) *IndexError {
	ie.key = key
	return ie
}

// WithOperation records what index operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// Key returns the key that was being processed when the error occurred.
func (ie *IndexError) Key() string {
	return ie.key
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// NewKeyNotFoundError creates the error returned by Remove when a key is
// neither indexed nor recoverable as a live set from any sstable.
func NewKeyNotFoundError(key string) *IndexError {
	return NewIndexError(ErrKeyNotFound, ErrorCodeIndexKeyNotFound, "key not found").
		WithKey(key).
		WithOperation("Remove")
}
