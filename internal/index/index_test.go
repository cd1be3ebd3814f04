package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexPutLookupDelete(t *testing.T) {
	idx := New()
	require.Equal(t, 0, idx.Len())

	_, ok := idx.Lookup("missing")
	require.False(t, ok)

	idx.Put("a", Pointer{Begin: 0, End: 10})
	require.Equal(t, 1, idx.Len())

	p, ok := idx.Lookup("a")
	require.True(t, ok)
	require.Equal(t, Pointer{Begin: 0, End: 10}, p)

	idx.Put("a", Pointer{Begin: 10, End: 20})
	p, ok = idx.Lookup("a")
	require.True(t, ok)
	require.Equal(t, Pointer{Begin: 10, End: 20}, p)

	idx.Delete("a")
	_, ok = idx.Lookup("a")
	require.False(t, ok)
	require.Equal(t, 0, idx.Len())
}

func TestIndexResetAndKeys(t *testing.T) {
	idx := New()
	idx.Put("a", Pointer{Begin: 0, End: 1})
	idx.Put("b", Pointer{Begin: 1, End: 2})
	require.ElementsMatch(t, []string{"a", "b"}, idx.Keys())

	idx.Reset()
	require.Equal(t, 0, idx.Len())
	require.Empty(t, idx.Keys())
}
