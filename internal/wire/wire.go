// Package wire implements the textual frame protocol spoken between
// kvsd-client and kvsd-server: a fixed-size, NUL-padded buffer carrying one
// space-tokenized command. It cannot carry values containing spaces or
// newlines - a known limitation carried over from the original protocol,
// called out as a hardening opportunity rather than fixed here, since fixing
// it would change the wire format the client and server agree on.
package wire

import (
	"fmt"
	"io"
	"strings"

	kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"
)

// Op identifies which engine operation a Command requests.
type Op string

const (
	OpSet    Op = "set"
	OpGet    Op = "get"
	OpRemove Op = "rm"
)

// Command is a decoded client request.
type Command struct {
	Op    Op
	Key   string
	Value string
}

// ReadFrame reads up to size bytes from r into a zero-initialized buffer and
// returns it trimmed to however many bytes were actually read. A command
// shorter than size bytes leaves the remainder of the buffer at its zero
// value, matching the original client's behavior of never padding its
// writes to the frame size.
func ReadFrame(r io.Reader, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return nil, kvserrors.NewEngineError(err, kvserrors.ErrorCodeIO, "failed to read request frame").
			WithComponent("wire")
	}
	return buf[:n], nil
}

// ParseCommand trims trailing NUL padding from frame, space-tokenizes what
// remains, and decodes it into a Command.
func ParseCommand(frame []byte) (Command, error) {
	text := strings.TrimRight(string(frame), "\x00")
	tokens := strings.Split(text, " ")

	if len(tokens) == 0 || tokens[0] == "" {
		return Command{}, invalidCommand(text)
	}

	switch Op(tokens[0]) {
	case OpSet:
		if len(tokens) != 3 {
			return Command{}, invalidCommand(text)
		}
		return Command{Op: OpSet, Key: tokens[1], Value: tokens[2]}, nil
	case OpGet:
		if len(tokens) != 2 {
			return Command{}, invalidCommand(text)
		}
		return Command{Op: OpGet, Key: tokens[1]}, nil
	case OpRemove:
		if len(tokens) != 2 {
			return Command{}, invalidCommand(text)
		}
		return Command{Op: OpRemove, Key: tokens[1]}, nil
	default:
		return Command{}, invalidCommand(text)
	}
}

// Encode renders cmd as the wire text the client writes - the counterpart to
// ParseCommand, used by internal/client.
func Encode(cmd Command) []byte {
	switch cmd.Op {
	case OpSet:
		return []byte(fmt.Sprintf("set %s %s", cmd.Key, cmd.Value))
	case OpGet:
		return []byte(fmt.Sprintf("get %s", cmd.Key))
	case OpRemove:
		return []byte(fmt.Sprintf("rm %s", cmd.Key))
	default:
		return nil
	}
}

func invalidCommand(text string) error {
	return kvserrors.NewEngineError(nil, kvserrors.ErrorCodeInvalidInput, "malformed command").
		WithComponent("wire").WithDetail("command", text)
}
