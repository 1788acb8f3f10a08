package seo

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"syscall"
	"time"
)

var errBlockedAddress = errors.New("target address is not publicly routable")

// blockedAddressError names the address a page fetch was refused to dial.
// It matches errBlockedAddress under errors.Is.
type blockedAddressError struct {
	addr string
}

func (e *blockedAddressError) Error() string {
	return fmt.Sprintf("dial %s: %v", e.addr, errBlockedAddress)
}

func (e *blockedAddressError) Is(target error) bool {
	return target == errBlockedAddress
}

// nonPublicPrefixes are special-purpose ranges that netip.Addr does not
// classify on its own.
var nonPublicPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),   // shared address space, RFC 6598
	netip.MustParsePrefix("192.0.0.0/24"),    // IETF protocol assignments, RFC 6890
	netip.MustParsePrefix("192.0.2.0/24"),    // documentation, RFC 5737
	netip.MustParsePrefix("198.18.0.0/15"),   // benchmarking, RFC 2544
	netip.MustParsePrefix("198.51.100.0/24"), // documentation, RFC 5737
	netip.MustParsePrefix("203.0.113.0/24"),  // documentation, RFC 5737
	netip.MustParsePrefix("2001:db8::/32"),   // documentation, RFC 3849
}

// newDialer returns the dialer for page fetches. Unless allowPrivate is set,
// every resolved address is checked right before connect, so a hostname
// that later resolves to an internal address is still refused.
func newDialer(allowPrivate bool) *net.Dialer {
	d := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if !allowPrivate {
		d.Control = refuseNonPublic
	}
	return d
}

func refuseNonPublic(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return &blockedAddressError{addr: address}
	}
	if !isPublicAddr(addrPort.Addr()) {
		return &blockedAddressError{addr: addrPort.Addr().Unmap().String()}
	}
	return nil
}

// isPublicAddr reports whether addr is a global unicast address outside the
// private and special-purpose ranges. IPv4-mapped IPv6 is judged as IPv4.
func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}
	for _, p := range nonPublicPrefixes {
		if p.Contains(addr) {
			return false
		}
	}
	return true
}

// blockedAddress returns the refused address carried by err, if any.
func blockedAddress(err error) (string, bool) {
	var blocked *blockedAddressError
	if errors.As(err, &blocked) {
		return blocked.addr, true
	}
	return "", false
}
