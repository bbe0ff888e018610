// Package pipe implements the channel contract over a named-pipe IPC
// connection to the server's well-known TDS pipe. Dialing is only available
// on Windows (github.com/Microsoft/go-winio); other platforms get a
// not-supported error from Connect, mirroring how the server exposes the
// endpoint in the first place.
//
// Known limitation: the pipe primitive offers no native per-operation
// timeout, so SetTimeout is a no-op and HasNativeTimeout reports false.
// Callers needing a deadline must arm a channel.Guard around the operation.
package pipe

import (
    "bufio"
    "context"
    "io"
    "net"
    "strings"
    "sync/atomic"
    "time"

    "tdslink/pkg/channel"
    "tdslink/pkg/tds"
)

// Channel is a named-pipe-backed duplex channel. Slots mirror the socket
// variant: conn plus two stream handles, each independently nullable so a
// watchdog's ForceClose is an atomic, observable invalidation.
type Channel struct {
    addr string
    conn atomic.Pointer[connBox]
    in   atomic.Pointer[readHandle]
    out  atomic.Pointer[writeHandle]
}

// connBox wraps the conn interface so it can live in an atomic pointer slot.
type connBox struct {
    net.Conn
}

var _ channel.Channel = (*Channel)(nil)

// Address assembles the SMB resource URL for the server's TDS pipe:
// smb://<host>/IPC$[/MSSQL$<instance>]/sql/query. The instance segment is
// added only when an instance name is supplied.
func Address(host, instance string) string {
    var b strings.Builder
    b.WriteString(tds.PipeScheme)
    b.WriteString(host)
    b.WriteString("/")
    b.WriteString(tds.PipeShare)
    if instance != "" {
        b.WriteString("/")
        b.WriteString(tds.PipeInstancePrefix)
        b.WriteString(instance)
    }
    b.WriteString(tds.PipePath)
    return b.String()
}

// dialPath is the same endpoint in the form the Windows pipe namespace
// understands: \\<host>\pipe\[MSSQL$<instance>\]sql\query.
func dialPath(host, instance string) string {
    var b strings.Builder
    b.WriteString(`\\`)
    b.WriteString(host)
    b.WriteString(`\pipe\`)
    if instance != "" {
        b.WriteString(tds.PipeInstancePrefix)
        b.WriteString(instance)
        b.WriteString(`\`)
    }
    b.WriteString(`sql\query`)
    return b.String()
}

// Connect opens the endpoint's pipe in duplex mode and returns a connected
// channel, or an error and no partially-usable object. SMB authentication
// uses the ambient OS session; the endpoint's Domain/User/Password are for
// the login layer above, not consumed here.
func Connect(ctx context.Context, ep channel.Endpoint) (*Channel, error) {
    c, err := dialPipe(ctx, ep)
    if err != nil {
        return nil, err
    }
    return newChannel(c, ep), nil
}

// newChannel wires an already-open duplex conn into a channel. Split out so
// the state machine is exercisable without a live pipe.
func newChannel(c net.Conn, ep channel.Endpoint) *Channel {
    ch := &Channel{addr: Address(ep.Host, ep.Instance)}
    box := &connBox{Conn: c}
    ch.conn.Store(box)
    ch.out.Store(&writeHandle{c: c})
    ch.in.Store(&readHandle{
        c:  c,
        br: bufio.NewReaderSize(c, channel.BufferSize(ep.TDSVersion, ep.PacketSize)),
    })
    return ch
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

// Close tears down the write handle then the read handle, propagating the
// first error. The pipe has no half-close, so the write-side close is a
// flushless no-op and the read-side close is what actually closes the pipe —
// the primitive cleans itself up when its streams close.
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

// ForceClose invalidates both handles and closes the pipe conn, swallowing
// every error. Idempotent; unblocks a goroutine stuck in a blocking Read.
func (ch *Channel) ForceClose() {
    if h := ch.out.Swap(nil); h != nil {
        _ = h.Close()
    }
    if h := ch.in.Swap(nil); h != nil {
        _ = h.Close()
    }
    if box := ch.conn.Swap(nil); box != nil {
        _ = box.Conn.Close()
    }
}

// SetTimeout is a no-op: the pipe primitive has no native timeout hook. Use
// a channel.Guard for deadlines on this variant.
func (ch *Channel) SetTimeout(time.Duration) {}

func (ch *Channel) HasNativeTimeout() bool { return false }

type readHandle struct {
    c  net.Conn
    br *bufio.Reader
}

func (h *readHandle) Read(p []byte) (int, error) { return h.br.Read(p) }

func (h *readHandle) Close() error { return h.c.Close() }

type writeHandle struct {
    c net.Conn
}

func (h *writeHandle) Write(p []byte) (int, error) { return h.c.Write(p) }

func (h *writeHandle) Close() error { return nil }
