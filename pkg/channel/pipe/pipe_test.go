package pipe

import (
    "net"
    "testing"
    "time"

    "tdslink/pkg/channel"
    "tdslink/pkg/tds"
)

func TestAddressAssembly(t *testing.T) {
    cases := []struct {
        host, instance, want string
    }{
        {"dbserver", "", "smb://dbserver/IPC$/sql/query"},
        {"dbserver", "SQLEXPRESS", "smb://dbserver/IPC$/MSSQL$SQLEXPRESS/sql/query"},
    }
    for _, tc := range cases {
        if got := Address(tc.host, tc.instance); got != tc.want {
            t.Fatalf("Address(%q, %q) = %q, want %q", tc.host, tc.instance, got, tc.want)
        }
    }
}

func TestDialPathAssembly(t *testing.T) {
    if got := dialPath("dbserver", ""); got != `\\dbserver\pipe\sql\query` {
        t.Fatalf("dialPath without instance = %q", got)
    }
    if got := dialPath("dbserver", "SQLEXPRESS"); got != `\\dbserver\pipe\MSSQL$SQLEXPRESS\sql\query` {
        t.Fatalf("dialPath with instance = %q", got)
    }
}

func testEndpoint() channel.Endpoint {
    return channel.Endpoint{
        Host:       "dbserver",
        Instance:   "SQLEXPRESS",
        TDSVersion: tds.TDS80,
        ServerType: tds.SQLServer,
    }
}

func TestZeroValueNotConnected(t *testing.T) {
    var ch Channel
    if ch.Connected() {
        t.Fatalf("unconstructed channel must not report connected")
    }
}

func TestLifecycleOverPipeConn(t *testing.T) {
    client, server := net.Pipe()
    defer server.Close()

    ch := newChannel(client, testEndpoint())
    if !ch.Connected() {
        t.Fatalf("expected Connected after construct")
    }
    if ch.Addr() != "smb://dbserver/IPC$/MSSQL$SQLEXPRESS/sql/query" {
        t.Fatalf("unexpected addr %q", ch.Addr())
    }
    if ch.HasNativeTimeout() {
        t.Fatalf("pipe variant must report the timeout capability gap")
    }
    ch.SetTimeout(time.Second) // documented no-op

    if err := ch.Close(); err != nil {
        t.Fatalf("close: %v", err)
    }
    if ch.Connected() {
        t.Fatalf("expected Connected false after close")
    }
    if ch.In() != nil || ch.Out() != nil {
        t.Fatalf("expected handles nulled after close")
    }
}

func TestForceCloseIdempotent(t *testing.T) {
    client, server := net.Pipe()
    defer server.Close()

    ch := newChannel(client, testEndpoint())
    ch.ForceClose()
    ch.ForceClose()
    if ch.Connected() {
        t.Fatalf("expected aborted channel to report not connected")
    }
}

func TestForceCloseUnblocksRead(t *testing.T) {
    client, server := net.Pipe()
    defer server.Close()

    ch := newChannel(client, testEndpoint())
    in := ch.In()

    readErr := make(chan error, 1)
    go func() {
        buf := make([]byte, 64)
        _, err := in.Read(buf)
        readErr <- err
    }()

    time.Sleep(50 * time.Millisecond)
    ch.ForceClose()

    select {
    case err := <-readErr:
        if err == nil {
            t.Fatalf("expected blocked read to fail after force close")
        }
    case <-time.After(2 * time.Second):
        t.Fatalf("blocked read did not return after force close")
    }
}
