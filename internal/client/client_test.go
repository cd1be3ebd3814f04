package client

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDialFailureIsReportedAsError(t *testing.T) {
	c := New("127.0.0.1:1")
	err := c.Set("a", "1")
	require.Error(t, err)

	_, _, err = c.Get("a")
	require.Error(t, err)

	err = c.Remove("a")
	require.Error(t, err)
}
