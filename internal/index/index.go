// Package index implements the in-memory key -> log-offset map described by
// the storage engine: a live key's latest Set record lives somewhere in the
// active log, and Pointer records exactly where. Index itself holds no lock
// of its own - every method assumes the caller already holds the engine's
// single state mutex (see internal/engine), matching the spec's concurrency
// model of one critical section per operation rather than the teacher's
// separate per-field locks.
package index

// Pointer identifies the byte range [Begin, End) of a key's live Set record
// within the active log.
type Pointer struct {
	Begin int64
	End   int64
}

// Index is the in-memory hash table mapping keys to their disk locations.
type Index struct {
	pointers map[string]Pointer
}

// New creates an empty Index.
func New() *Index {
	return &Index{pointers: make(map[string]Pointer, 1024)}
}

// Lookup returns the Pointer for key and whether it is present.
func (idx *Index) Lookup(key string) (Pointer, bool) {
	p, ok := idx.pointers[key]
	return p, ok
}

// Put records key as live at the given byte range, overwriting any prior entry.
func (idx *Index) Put(key string, p Pointer) {
	idx.pointers[key] = p
}

// Delete removes key from the index, if present.
func (idx *Index) Delete(key string) {
	delete(idx.pointers, key)
}

// Len returns the number of live keys currently indexed.
func (idx *Index) Len() int {
	return len(idx.pointers)
}

// Reset clears every entry, used when compaction rewrites the active log
// and the index is about to be rebuilt from the new tail.
func (idx *Index) Reset() {
	clear(idx.pointers)
}

// Keys returns a snapshot of every currently live key. Used by tests;
// callers must not rely on iteration order.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.pointers))
	for k := range idx.pointers {
		keys = append(keys, k)
	}
	return keys
}
