// Package tds holds protocol-level constants shared by the transport layer:
// protocol versions, server kinds, packet-size bounds and the well-known
// named-pipe path pieces.
package tds

import "fmt"

// Protocol versions in ascending order. TDS70 is the threshold for the
// "modern" protocol family (SQL Server 7.0 and later).
const (
    TDS42 = 1
    TDS50 = 2
    TDS70 = 3
    TDS80 = 4
)

// Server kinds.
const (
    SQLServer = 1
    Sybase    = 2
)

// Packet size bounds. A requested packet size of 0 means "use the default".
const (
    MinPacketSize          = 512
    MaxPacketSize          = 32768
    DefaultPacketSizeTDS70 = 4096
)

// Well-known ports.
const (
    DefaultPort = 1433
    BrowserPort = 1434
)

// Named-pipe address pieces for the SQL Server IPC endpoint.
const (
    PipeScheme         = "smb://"
    PipeShare          = "IPC$"
    PipeInstancePrefix = "MSSQL$"
    PipePath           = "/sql/query"
)

// ParseVersion maps a protocol version string ("4.2", "5.0", "7.0", "8.0")
// to its version constant.
func ParseVersion(s string) (int, error) {
    switch s {
    case "4.2":
        return TDS42, nil
    case "5.0":
        return TDS50, nil
    case "7.0":
        return TDS70, nil
    case "8.0":
        return TDS80, nil
    default:
        return 0, fmt.Errorf("tds: unknown protocol version %q", s)
    }
}

// ParseServerType maps a server kind string to its constant.
func ParseServerType(s string) (int, error) {
    switch s {
    case "sqlserver":
        return SQLServer, nil
    case "sybase":
        return Sybase, nil
    default:
        return 0, fmt.Errorf("tds: unknown server type %q", s)
    }
}
