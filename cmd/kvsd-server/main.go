// Command kvsd-server runs the TCP front-end over the log-structured engine.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/iamNilotpal/kvsd/internal/engine"
	"github.com/iamNilotpal/kvsd/internal/pool"
	"github.com/iamNilotpal/kvsd/internal/server"
	"github.com/iamNilotpal/kvsd/pkg/logger"
	"github.com/iamNilotpal/kvsd/pkg/netaddr"
	"github.com/iamNilotpal/kvsd/pkg/options"
)

// cli is the server's argument surface: an engine backend selector kept from
// the original for compatibility, and the listen address. The "sled"
// backend named by the original no longer exists - the engine interface is
// retained so another backend could be slotted in, but selecting it now
// fails fast with a clear message instead of silently falling back to kvs.
var cli struct {
	Engine  string `help:"Storage engine backend (kvs is the only one built in)." enum:"kvs,sled" default:"kvs"`
	Addr    string `short:"a" help:"Listen address, IPv4:port." default:"127.0.0.1:4000"`
	DataDir string `help:"Directory holding the active log and sstable segments." default:"."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("kvsd-server"),
		kong.Description("kvsd storage engine server"),
	)

	log := logger.New("kvsd-server")
	defer log.Sync()

	if cli.Engine != "kvs" {
		log.Fatalw("unsupported engine backend", "engine", cli.Engine)
	}
	if err := netaddr.Validate(cli.Addr); err != nil {
		log.Fatalw("invalid listen address", "addr", cli.Addr, "error", err)
	}

	opts, err := options.Apply(
		options.WithDataDir(cli.DataDir),
		options.WithAddr(cli.Addr),
	)
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	eng, err := engine.New(engine.Config{Options: opts, Logger: log})
	if err != nil {
		log.Fatalw("failed to open engine", "error", err)
	}
	defer eng.Close()

	workers, err := pool.NewSharedQueue(opts.WorkerCount, log)
	if err != nil {
		log.Fatalw("failed to start worker pool", "error", err)
	}

	srv, err := server.New(opts.Addr, eng, workers, opts.FrameSize, log)
	if err != nil {
		log.Fatalw("failed to start server", "error", err)
	}

	log.Infow("kvsd server listening", "addr", srv.Addr(), "data_dir", opts.DataDir, "workers", opts.WorkerCount)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Infow("shutting down")
		srv.Close()
	}()

	if err := srv.Serve(); err != nil {
		log.Fatalw("server stopped with error", "error", err)
	}
	fmt.Fprintln(os.Stderr, "kvsd-server exiting")
}
