package channel

import (
    "errors"
    "fmt"
    "net"
)

// ErrUnknownHost tags construction failures caused by name resolution, so the
// caller can apply different retry/reporting policy than for ordinary connect
// errors. Match with errors.Is.
var ErrUnknownHost = errors.New("unknown host")

// WrapDial classifies a dial failure for the given host. Resolver failures
// are tagged with ErrUnknownHost; everything else is wrapped as a plain
// connect error. The original cause stays reachable through the chain.
func WrapDial(host string, err error) error {
    var dnsErr *net.DNSError
    if errors.As(err, &dnsErr) {
        return fmt.Errorf("channel: %w %q: %w", ErrUnknownHost, host, err)
    }
    return fmt.Errorf("channel: connect %q: %w", host, err)
}
