// Package server implements the TCP front-end: one listener, one thread
// pool, one engine handle constructed up front and cloned into every
// dispatched task - fixing the original's per-connection engine reopen (§9).
package server

import (
	"errors"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/iamNilotpal/kvsd/internal/engine"
	"github.com/iamNilotpal/kvsd/internal/pool"
	"github.com/iamNilotpal/kvsd/internal/wire"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// keyNotFoundReply is the literal text written back on a get miss or a
// remove of an unknown key, matching the original server's responses.
const keyNotFoundReply = "Key not found"

// Server accepts connections on a listener and dispatches one task per
// connection to a worker pool.
type Server struct {
	listener  net.Listener
	pool      pool.Pool
	engine    engine.KVEngine
	frameSize int
	logger    *zap.SugaredLogger
}

// New builds a Server bound to addr, backed by eng (cloned once per
// accepted connection) and dispatching through p.
func New(addr string, eng engine.KVEngine, p pool.Pool, frameSize int, logger *zap.SugaredLogger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to bind listener").
			WithComponent("server").WithDetail("addr", addr)
	}

	return &Server{listener: ln, pool: p, engine: eng, frameSize: frameSize, logger: logger}, nil
}

// Addr returns the address the listener is bound to.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve accepts connections until the listener is closed, dispatching each
// to the pool. It returns nil when the listener is closed deliberately.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if isClosedListener(err) {
				return nil
			}
			return kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to accept connection").
				WithComponent("server")
		}

		handle := s.engine.Clone()
		s.pool.Spawn(func() {
			s.handleConn(conn, handle)
		})
	}
}

// Close stops accepting connections and shuts down the worker pool.
func (s *Server) Close() error {
	s.pool.Close()
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn, eng engine.KVEngine) {
	defer conn.Close()

	frame, err := wire.ReadFrame(conn, s.frameSize)
	if err != nil {
		s.logger.Errorw("failed to read request frame", "error", err)
		return
	}

	cmd, err := wire.ParseCommand(frame)
	if err != nil {
		s.logger.Warnw("malformed command", "error", err)
		return
	}

	switch cmd.Op {
	case wire.OpSet:
		if err := eng.Set(cmd.Key, cmd.Value); err != nil {
			s.logger.Errorw("set failed", "key", cmd.Key, "error", err)
		}

	case wire.OpGet:
		value, ok, err := eng.Get(cmd.Key)
		if err != nil {
			s.logger.Errorw("get failed", "key", cmd.Key, "error", err)
			return
		}
		if !ok {
			s.writeReply(conn, keyNotFoundReply)
			return
		}
		s.writeReply(conn, value)

	case wire.OpRemove:
		if err := eng.Remove(cmd.Key); err != nil {
			if kvserrors.IsKeyNotFound(err) {
				s.writeReply(conn, keyNotFoundReply)
				return
			}
			s.logger.Errorw("remove failed", "key", cmd.Key, "error", err)
		}
	}
}

func (s *Server) writeReply(conn net.Conn, text string) {
	if _, err := io.WriteString(conn, text); err != nil {
		s.logger.Errorw("failed to write reply", "error", err)
	}
}

func isClosedListener(err error) bool {
	return errors.Is(err, net.ErrClosed)
}
