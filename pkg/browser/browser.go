// Package browser resolves a named SQL Server instance to its TCP port by
// querying the SQL Server Browser service (SSRP) on UDP 1434.
package browser

import (
    "context"
    "encoding/binary"
    "errors"
    "fmt"
    "net"
    "strconv"
    "strings"
    "time"

    "tdslink/pkg/tds"
)

// SSRP opcodes.
const (
    clntUcastInst = 0x04
    svrResp       = 0x05
)

const defaultWait = 5 * time.Second

// Lookup asks the browser service on host for the TCP port of instance.
func Lookup(ctx context.Context, host, instance string) (int, error) {
    return lookupAt(ctx, net.JoinHostPort(host, strconv.Itoa(tds.BrowserPort)), instance)
}

func lookupAt(ctx context.Context, addr, instance string) (int, error) {
    d := net.Dialer{}
    c, err := d.DialContext(ctx, "udp", addr)
    if err != nil {
        return 0, fmt.Errorf("browser: dial %s: %w", addr, err)
    }
    defer c.Close()

    if dl, ok := ctx.Deadline(); ok {
        _ = c.SetDeadline(dl)
    } else {
        _ = c.SetDeadline(time.Now().Add(defaultWait))
    }

    req := make([]byte, 0, 1+len(instance))
    req = append(req, clntUcastInst)
    req = append(req, instance...)
    if _, err := c.Write(req); err != nil {
        return 0, fmt.Errorf("browser: send: %w", err)
    }

    buf := make([]byte, 4096)
    n, err := c.Read(buf)
    if err != nil {
        return 0, fmt.Errorf("browser: read: %w", err)
    }
    return parseResponse(buf[:n], instance)
}

// parseResponse extracts the tcp port for instance from an SVR_RESP payload:
// 0x05, u16 LE body length, then a ;-separated key/value string like
// ServerName;HOST;InstanceName;SQLEXPRESS;IsClustered;No;Version;...;tcp;1433;;
func parseResponse(b []byte, instance string) (int, error) {
    if len(b) < 3 || b[0] != svrResp {
        return 0, errors.New("browser: malformed response")
    }
    size := int(binary.LittleEndian.Uint16(b[1:3]))
    if size > len(b)-3 {
        size = len(b) - 3
    }
    fields := strings.Split(string(b[3:3+size]), ";")

    // A multi-instance reply concatenates one record per instance; track
    // whether the record being scanned is the requested one.
    match := instance == ""
    for i := 0; i+1 < len(fields); i += 2 {
        k, v := fields[i], fields[i+1]
        switch {
        case strings.EqualFold(k, "InstanceName"):
            match = instance == "" || strings.EqualFold(v, instance)
        case strings.EqualFold(k, "tcp") && match:
            port, err := strconv.Atoi(v)
            if err != nil || port <= 0 || port > 65535 {
                return 0, fmt.Errorf("browser: bad tcp port %q", v)
            }
            return port, nil
        }
    }
    return 0, fmt.Errorf("browser: instance %q not found", instance)
}
