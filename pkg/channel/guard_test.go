package channel

import (
    "sync/atomic"
    "testing"
    "time"
)

type fakeAborter struct {
    calls atomic.Int32
    done  chan struct{}
}

func newFakeAborter() *fakeAborter { return &fakeAborter{done: make(chan struct{})} }

func (a *fakeAborter) ForceClose() {
    if a.calls.Add(1) == 1 {
        close(a.done)
    }
}

func TestGuardFires(t *testing.T) {
    a := newFakeAborter()
    g := Watch(a, 20*time.Millisecond)
    select {
    case <-a.done:
    case <-time.After(2 * time.Second):
        t.Fatalf("guard did not fire")
    }
    if !g.Stop() {
        t.Fatalf("Stop after expiry must report fired")
    }
    if n := a.calls.Load(); n != 1 {
        t.Fatalf("expected exactly one abort, got %d", n)
    }
}

func TestGuardStopDisarms(t *testing.T) {
    a := newFakeAborter()
    g := Watch(a, 100*time.Millisecond)
    if g.Stop() {
        t.Fatalf("Stop before expiry must report not fired")
    }
    time.Sleep(200 * time.Millisecond)
    if n := a.calls.Load(); n != 0 {
        t.Fatalf("disarmed guard still aborted %d times", n)
    }
}

func TestGuardStopIdempotent(t *testing.T) {
    a := newFakeAborter()
    g := Watch(a, time.Hour)
    if g.Stop() || g.Stop() {
        t.Fatalf("repeated Stop on disarmed guard must stay false")
    }
}
