//go:build windows

package pipe

import (
    "context"
    "net"

    "github.com/Microsoft/go-winio"

    "tdslink/pkg/channel"
)

func dialPipe(ctx context.Context, ep channel.Endpoint) (net.Conn, error) {
    if ep.ConnectTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(ctx, ep.ConnectTimeout)
        defer cancel()
    }
    c, err := winio.DialPipeContext(ctx, dialPath(ep.Host, ep.Instance))
    if err != nil {
        return nil, channel.WrapDial(ep.Host, err)
    }
    return c, nil
}
