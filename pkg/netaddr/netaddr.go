// Package netaddr validates the "IPv4:PORT" addresses accepted by the kvsd
// server and client CLIs. The rule is deliberately the original
// implementation's own - exactly one colon, exactly three dots, digits
// only - rather than a general-purpose parser: it's what the client's
// "invalid address -> exit 1" contract is defined against, and a stricter
// RFC-faithful parser (net.ResolveTCPAddr, netip.ParseAddrPort) would accept
// or reject a different set of strings than the spec's scenarios expect.
package netaddr

import kvserrors "github.com/iamNilotpal/kvsd/pkg/errors"

// Validate reports whether addr looks like "A.B.C.D:PORT": every rune is
// either a digit, a single colon, or one of three dots. It does not check
// that each octet is <= 255 or that the port is in range, matching the
// original CLI's behavior exactly.
func Validate(addr string) error {
	colons, dots := 0, 0

	for _, r := range addr {
		switch {
		case r == ':':
			colons++
			if colons > 1 {
				return invalidAddr(addr)
			}
		case r == '.':
			dots++
			if dots > 3 {
				return invalidAddr(addr)
			}
		case r < '0' || r > '9':
			return invalidAddr(addr)
		}
	}

	if colons != 1 || dots != 3 {
		return invalidAddr(addr)
	}
	return nil
}

func invalidAddr(addr string) error {
	return kvserrors.NewFieldFormatError("addr", addr, "IPv4:PORT, e.g. 127.0.0.1:4000")
}
