package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFrameTrimsToBytesActuallyRead(t *testing.T) {
	r := strings.NewReader("get foo")
	frame, err := ReadFrame(r, 100)
	require.NoError(t, err)
	require.Len(t, frame, len("get foo"))
	require.Equal(t, "get foo", string(frame))
}

func TestParseCommandRoundTripsEachOp(t *testing.T) {
	cases := []Command{
		{Op: OpSet, Key: "k", Value: "v"},
		{Op: OpGet, Key: "k"},
		{Op: OpRemove, Key: "k"},
	}

	for _, want := range cases {
		encoded := Encode(want)
		got, err := ParseCommand(encoded)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestParseCommandTrimsNulPadding(t *testing.T) {
	frame := make([]byte, 100)
	copy(frame, "get foo")

	cmd, err := ParseCommand(frame)
	require.NoError(t, err)
	require.Equal(t, Command{Op: OpGet, Key: "foo"}, cmd)
}

func TestParseCommandRejectsWrongArity(t *testing.T) {
	_, err := ParseCommand([]byte("set onlykey"))
	require.Error(t, err)

	_, err = ParseCommand([]byte("get"))
	require.Error(t, err)

	_, err = ParseCommand([]byte("rm a b"))
	require.Error(t, err)
}

func TestParseCommandRejectsUnknownOp(t *testing.T) {
	_, err := ParseCommand([]byte("frobnicate a b"))
	require.Error(t, err)
}

func TestParseCommandRejectsEmptyFrame(t *testing.T) {
	_, err := ParseCommand(nil)
	require.Error(t, err)

	_, err = ParseCommand(bytes.Repeat([]byte{0}, 10))
	require.Error(t, err)
}
