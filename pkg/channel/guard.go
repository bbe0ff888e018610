package channel

import (
    "sync/atomic"
    "time"
)

const (
    guardArmed int32 = iota
    guardFired
    guardStopped
)

// Guard aborts a channel when a deadline elapses. It is the supported
// cancellation path for variants without native timeouts: arm it around a
// login or operation, and Stop it once the work completes.
type Guard struct {
    timer *time.Timer
    state atomic.Int32
}

// Watch arms a guard that calls a.ForceClose once if d elapses before Stop.
func Watch(a Aborter, d time.Duration) *Guard {
    g := &Guard{}
    g.timer = time.AfterFunc(d, func() {
        if g.state.CompareAndSwap(guardArmed, guardFired) {
            a.ForceClose()
        }
    })
    return g
}

// Stop disarms the guard and reports whether the abort already fired. A true
// return means the worker's pending I/O failure was caused by the guard, and
// the caller should surface a single timeout error rather than the secondary
// I/O error from the abort machinery.
func (g *Guard) Stop() bool {
    if g.state.CompareAndSwap(guardArmed, guardStopped) {
        g.timer.Stop()
        return false
    }
    return g.state.Load() == guardFired
}
