// Package client implements the kvsd wire client: dial, write one command,
// half-close the write side, read the reply to EOF.
package client

import (
	"io"
	"net"

	"github.com/iamNilotpal/kvsd/internal/wire"
	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// Client targets a kvsd server. Every command opens its own connection and
// closes it once the command is done, matching the original CLI's
// one-shot-connection-per-invocation behavior.
type Client struct {
	addr string
}

// New returns a Client targeting addr ("IPv4:port").
func New(addr string) *Client {
	return &Client{addr: addr}
}

// Set sends a set command and waits for the server to close the connection.
// The server sends no acknowledgement for set, so whatever reply arrives is
// discarded.
func (c *Client) Set(key, value string) error {
	_, err := c.sendAndRead(wire.Command{Op: wire.OpSet, Key: key, Value: value})
	return err
}

// Get sends a get command and returns the server's reply. A reply of
// "Key not found" is surfaced as (_, false, nil) rather than as text.
func (c *Client) Get(key string) (string, bool, error) {
	reply, err := c.sendAndRead(wire.Command{Op: wire.OpGet, Key: key})
	if err != nil {
		return "", false, err
	}
	if reply == keyNotFoundReply {
		return "", false, nil
	}
	return reply, true, nil
}

// Remove sends a rm command. A non-empty reply means the server rejected the
// removal (key not found), surfaced as ErrKeyNotFound.
func (c *Client) Remove(key string) error {
	reply, err := c.sendAndRead(wire.Command{Op: wire.OpRemove, Key: key})
	if err != nil {
		return err
	}
	if reply != "" {
		return kvserrors.NewKeyNotFoundError(key)
	}
	return nil
}

const keyNotFoundReply = "Key not found"

func (c *Client) sendAndRead(cmd wire.Command) (string, error) {
	conn, err := c.dial()
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.Write(wire.Encode(cmd)); err != nil {
		return "", writeErr(err)
	}

	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return "", writeErr(err)
		}
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return "", kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to read server reply").
			WithComponent("client")
	}
	return string(reply), nil
}

func (c *Client) dial() (net.Conn, error) {
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return nil, kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to connect to server").
			WithComponent("client").WithDetail("addr", c.addr)
	}
	return conn, nil
}

func writeErr(err error) error {
	return kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to write command").
		WithComponent("client")
}
