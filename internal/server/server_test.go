package server

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamNilotpal/kvsd/internal/client"
	"github.com/iamNilotpal/kvsd/internal/engine"
	"github.com/iamNilotpal/kvsd/internal/pool"
	"github.com/iamNilotpal/kvsd/pkg/options"
)

func newTestServer(t *testing.T) (*Server, *client.Client) {
	t.Helper()

	dir := t.TempDir()
	opts, err := options.Apply(options.WithDataDir(dir), options.WithAddr("127.0.0.1:0"))
	require.NoError(t, err)

	eng, err := engine.New(engine.Config{Options: opts})
	require.NoError(t, err)

	workers, err := pool.NewSharedQueue(4, nil)
	require.NoError(t, err)

	srv, err := New(opts.Addr, eng, workers, opts.FrameSize, nil)
	require.NoError(t, err)

	go func() { _ = srv.Serve() }()
	t.Cleanup(func() {
		_ = srv.Close()
		_ = eng.Close()
	})

	return srv, client.New(srv.Addr())
}

func TestServerSetGetRemoveRoundTrip(t *testing.T) {
	_, c := newTestServer(t)

	require.NoError(t, c.Set("a", "1"))

	v, ok, err := c.Get("a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", v)

	require.NoError(t, c.Remove("a"))

	_, ok, err = c.Get("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestServerGetMissingKeyReportsNotFound(t *testing.T) {
	_, c := newTestServer(t)

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestServerRemoveMissingKeyReturnsError(t *testing.T) {
	_, c := newTestServer(t)

	err := c.Remove("missing")
	require.Error(t, err)
}

func TestServerServesConcurrentClients(t *testing.T) {
	_, c := newTestServer(t)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			key := "k"
			done <- c.Set(key, "v")
		}(i)
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, <-done)
	}

	v, ok, err := c.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}
