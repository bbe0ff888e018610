// Package socket implements the channel contract over a TCP stream socket.
package socket

import (
    "bufio"
    "context"
    "fmt"
    "io"
    "net"
    "strconv"
    "sync/atomic"
    "time"

    "tdslink/pkg/channel"
    "tdslink/pkg/tds"
)

// Channel is a TCP-backed duplex channel. The conn and the two stream handles
// live in independently replaceable atomic slots so that ForceClose can null
// them without taking a lock the worker's blocking Read would exclude.
type Channel struct {
    addr    string
    conn    atomic.Pointer[net.TCPConn]
    in      atomic.Pointer[readHandle]
    out     atomic.Pointer[writeHandle]
    timeout atomic.Int64 // advisory per-operation deadline, nanoseconds
}

var _ channel.Channel = (*Channel)(nil)

// Connect dials the endpoint and returns a connected channel, or an error and
// no partially-usable object. Resolver failures are distinguishable via
// channel.ErrUnknownHost.
func Connect(ctx context.Context, ep channel.Endpoint) (*Channel, error) {
    port := ep.Port
    if port == 0 {
        port = tds.DefaultPort
    }
    addr := net.JoinHostPort(ep.Host, strconv.Itoa(port))

    d := net.Dialer{Timeout: ep.ConnectTimeout}
    if !ep.KeepAlive {
        d.KeepAlive = -1
    }
    c, err := d.DialContext(ctx, "tcp", addr)
    if err != nil {
        return nil, channel.WrapDial(ep.Host, err)
    }
    tc := c.(*net.TCPConn)
    if err := tc.SetNoDelay(ep.TCPNoDelay); err != nil {
        _ = tc.Close()
        return nil, fmt.Errorf("socket: set nodelay: %w", err)
    }

    ch := &Channel{addr: addr}
    ch.conn.Store(tc)
    ch.out.Store(&writeHandle{ch: ch, c: tc})
    ch.in.Store(&readHandle{
        ch: ch,
        c:  tc,
        br: bufio.NewReaderSize(tc, channel.BufferSize(ep.TDSVersion, ep.PacketSize)),
    })
    return ch, nil
}

func (ch *Channel) Addr() string { return ch.addr }

func (ch *Channel) In() io.Reader {
    if h := ch.in.Load(); h != nil {
        return h
    }
    return nil
}

func (ch *Channel) Out() io.Writer {
    if h := ch.out.Load(); h != nil {
        return h
    }
    return nil
}

func (ch *Channel) Connected() bool { return ch.conn.Load() != nil }

// Close shuts down the write side then the read side, propagating the first
// error; both are attempted regardless. The raw conn object is deliberately
// not closed here — with both directions shut down the net package's own
// finalizer reclaims the descriptor (see the package docs for the caveat).
func (ch *Channel) Close() error {
    var first error
    if h := ch.out.Swap(nil); h != nil {
        first = h.Close()
    }
    if h := ch.in.Swap(nil); h != nil {
        if err := h.Close(); err != nil && first == nil {
            first = err
        }
    }
    ch.conn.Store(nil)
    return first
}

// ForceClose invalidates both handles and closes the conn, swallowing every
// error. Closing the conn is what kicks a goroutine blocked in Read out with
// an error instead of leaving it hung. Safe to call repeatedly and from a
// goroutine other than the worker.
func (ch *Channel) ForceClose() {
    if h := ch.out.Swap(nil); h != nil {
        _ = h.Close()
    }
    if h := ch.in.Swap(nil); h != nil {
        _ = h.Close()
    }
    if c := ch.conn.Swap(nil); c != nil {
        _ = c.Close()
    }
}

// SetTimeout sets the advisory I/O timeout applied as a deadline before each
// read and write. Zero disables it.
func (ch *Channel) SetTimeout(d time.Duration) { ch.timeout.Store(int64(d)) }

func (ch *Channel) HasNativeTimeout() bool { return true }

type readHandle struct {
    ch *Channel
    c  *net.TCPConn
    br *bufio.Reader
}

func (h *readHandle) Read(p []byte) (int, error) {
    if d := h.ch.timeout.Load(); d > 0 {
        _ = h.c.SetReadDeadline(time.Now().Add(time.Duration(d)))
    }
    return h.br.Read(p)
}

func (h *readHandle) Close() error { return h.c.CloseRead() }

type writeHandle struct {
    ch *Channel
    c  *net.TCPConn
}

func (h *writeHandle) Write(p []byte) (int, error) {
    if d := h.ch.timeout.Load(); d > 0 {
        _ = h.c.SetWriteDeadline(time.Now().Add(time.Duration(d)))
    }
    return h.c.Write(p)
}

func (h *writeHandle) Close() error { return h.c.CloseWrite() }
