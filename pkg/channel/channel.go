// Package channel defines the duplex byte-channel contract the TDS protocol
// layer talks through, plus the pieces every variant shares: the endpoint
// descriptor, the input buffer sizing policy, the dial error taxonomy and the
// login-deadline guard.
//
// Key concepts:
// - Channel: one underlying conn plus one read handle and one write handle,
//   each an independently replaceable slot
// - Close: graceful end-of-life teardown, errors propagated
// - ForceClose: best-effort, error-swallowing teardown safe to call from a
//   watchdog goroutine while the worker is blocked in Read/Write
package channel

import (
    "io"
    "time"
)

// Channel is the transport contract beneath the TDS protocol layer. A channel
// is single-use: it is built connected by a variant constructor and ends in
// exactly one of the two closed states.
//
// Two goroutines may touch one channel: the worker doing blocking reads and
// writes, and a watchdog calling ForceClose on deadline expiry. The handle
// slots are not guarded by a lock; after a forced close the worker must treat
// a nil handle or any I/O error as the abort signal, not as a distinct bug.
type Channel interface {
    // In returns the buffered read-stream handle, or nil once the channel
    // has been closed or aborted.
    In() io.Reader

    // Out returns the write-stream handle, or nil once the channel has been
    // closed or aborted.
    Out() io.Writer

    // Connected reports whether the underlying conn slot is still held.
    Connected() bool

    // Addr describes the remote endpoint the channel was built for.
    Addr() string

    // Close tears down the write handle then the read handle, propagating
    // the first error; both closes are attempted regardless. The raw conn
    // object is not explicitly closed beyond what the stream teardown
    // implies; see the variant docs for what that means per primitive.
    Close() error

    // ForceClose unconditionally invalidates both handles and the conn,
    // swallowing every error. It never blocks on pending I/O, is idempotent,
    // and causes a concurrently blocked Read to fail promptly.
    ForceClose()

    // SetTimeout sets an advisory per-operation I/O timeout. Variants whose
    // primitive has no native timeout hook implement this as a no-op and
    // report it via HasNativeTimeout; such callers must rely on a Guard.
    SetTimeout(d time.Duration)

    // HasNativeTimeout reports whether SetTimeout has any effect on this
    // variant.
    HasNativeTimeout() bool
}

// Aborter is the slice of Channel a Guard needs.
type Aborter interface {
    ForceClose()
}
