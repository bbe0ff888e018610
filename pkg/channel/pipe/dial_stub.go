//go:build !windows

package pipe

import (
    "context"
    "fmt"
    "net"

    "tdslink/pkg/channel"
)

func dialPipe(_ context.Context, _ channel.Endpoint) (net.Conn, error) {
    return nil, fmt.Errorf("pipe: named-pipe transport is not supported on this platform")
}
