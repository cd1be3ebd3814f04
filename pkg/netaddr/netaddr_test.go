package netaddr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedAddresses(t *testing.T) {
	require.NoError(t, Validate("127.0.0.1:4000"))
	require.NoError(t, Validate("0.0.0.0:1"))
}

func TestValidateRejectsMalformedAddresses(t *testing.T) {
	cases := []string{
		"",
		"localhost:4000",
		"127.0.0.1",
		"127.0.0.1:4000:5000",
		"1.2.3.4.5:4000",
		"127.0.0.1:400a",
	}
	for _, addr := range cases {
		require.Error(t, Validate(addr), "expected %q to be rejected", addr)
	}
}
