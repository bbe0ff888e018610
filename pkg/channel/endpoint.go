package channel

import "time"

// Endpoint describes where and how to connect. It is a plain value built once
// by the factory and never mutated afterwards; variant constructors read it
// during construction only.
type Endpoint struct {
    Host       string
    Port       int
    Instance   string
    TDSVersion int
    ServerType int
    // PacketSize is the negotiated protocol packet size; 0 means "use the
    // version-dependent default" (see BufferSize).
    PacketSize int

    // Login credentials. The named-pipe variant does not consume them for
    // SMB-level auth (the ambient OS session is used); they ride along for
    // the login layer above.
    Domain   string
    User     string
    Password string

    ConnectTimeout time.Duration
    TCPNoDelay     bool
    KeepAlive      bool
}
