package browser

import (
    "context"
    "encoding/binary"
    "net"
    "testing"
    "time"
)

func svrRespPacket(body string) []byte {
    b := make([]byte, 3+len(body))
    b[0] = svrResp
    binary.LittleEndian.PutUint16(b[1:3], uint16(len(body)))
    copy(b[3:], body)
    return b
}

const exampleBody = "ServerName;DBSERVER;InstanceName;SQLEXPRESS;IsClustered;No;Version;9.00.1399.06;tcp;1433;np;\\\\DBSERVER\\pipe\\MSSQL$SQLEXPRESS\\sql\\query;;"

func TestParseResponsePort(t *testing.T) {
    port, err := parseResponse(svrRespPacket(exampleBody), "sqlexpress")
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if port != 1433 {
        t.Fatalf("expected port 1433, got %d", port)
    }
}

func TestParseResponseAnyInstance(t *testing.T) {
    port, err := parseResponse(svrRespPacket(exampleBody), "")
    if err != nil || port != 1433 {
        t.Fatalf("expected 1433 for empty instance filter, got %d %v", port, err)
    }
}

func TestParseResponseUnknownInstance(t *testing.T) {
    if _, err := parseResponse(svrRespPacket(exampleBody), "OTHER"); err == nil {
        t.Fatalf("expected error for unknown instance")
    }
}

func TestParseResponseMalformed(t *testing.T) {
    cases := [][]byte{
        nil,
        {0x05},
        {0x04, 0x00, 0x00},
        svrRespPacket("InstanceName;X;tcp;notaport;;"),
    }
    for i, b := range cases {
        if _, err := parseResponse(b, "x"); err == nil {
            t.Fatalf("case %d: expected error", i)
        }
    }
}

func TestLookupAt(t *testing.T) {
    pc, err := net.ListenPacket("udp", "127.0.0.1:0")
    if err != nil {
        t.Fatalf("listen udp: %v", err)
    }
    defer pc.Close()

    go func() {
        buf := make([]byte, 1024)
        n, addr, err := pc.ReadFrom(buf)
        if err != nil || n < 1 || buf[0] != clntUcastInst {
            return
        }
        _, _ = pc.WriteTo(svrRespPacket(exampleBody), addr)
    }()

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    port, err := lookupAt(ctx, pc.LocalAddr().String(), "SQLEXPRESS")
    if err != nil {
        t.Fatalf("lookup: %v", err)
    }
    if port != 1433 {
        t.Fatalf("expected 1433, got %d", port)
    }
}
