package kvsd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/kvsd/pkg/options"
)

func TestOpenSetGetRemoveClose(t *testing.T) {
	dir := t.TempDir()

	store, err := Open("kvsd-test", options.WithDataDir(dir))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set("a", "1"))

	v, ok, err := store.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)

	require.NoError(t, store.Remove("a"))

	_, ok, err = store.Get("a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Close())
}
