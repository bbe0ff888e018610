// Package channels selects and constructs the concrete channel variant for a
// connection configuration, so the protocol layer above stays
// transport-agnostic.
package channels

import (
    "context"
    "fmt"
    "time"

    "tdslink/pkg/browser"
    "tdslink/pkg/channel"
    "tdslink/pkg/channel/pipe"
    "tdslink/pkg/channel/socket"
    "tdslink/pkg/config"
    "tdslink/pkg/tds"
)

// Open builds the endpoint from cc and constructs the configured variant.
// For a named TCP instance with no explicit port, the port is resolved
// through the browser service first. A configured socket timeout is applied
// to the new channel; on variants without native timeout support the setter
// is a documented no-op and callers must use a channel.Guard instead.
func Open(ctx context.Context, cc config.Connection) (channel.Channel, error) {
    ep, err := endpoint(ctx, cc)
    if err != nil {
        return nil, err
    }
    var ch channel.Channel
    switch cc.Transport {
    case "tcp":
        ch, err = socket.Connect(ctx, ep)
    case "pipe":
        ch, err = pipe.Connect(ctx, ep)
    default:
        return nil, fmt.Errorf("channels: unknown transport kind %q", cc.Transport)
    }
    if err != nil {
        return nil, err
    }
    if cc.SocketTimeoutMS > 0 {
        ch.SetTimeout(time.Duration(cc.SocketTimeoutMS) * time.Millisecond)
    }
    return ch, nil
}

func endpoint(ctx context.Context, cc config.Connection) (channel.Endpoint, error) {
    version, err := tds.ParseVersion(cc.TDSVersion)
    if err != nil {
        return channel.Endpoint{}, err
    }
    serverType, err := tds.ParseServerType(cc.ServerType)
    if err != nil {
        return channel.Endpoint{}, err
    }

    port := cc.Port
    if cc.Transport == "tcp" && port == 0 && cc.Instance != "" {
        port, err = browser.Lookup(ctx, cc.Host, cc.Instance)
        if err != nil {
            return channel.Endpoint{}, err
        }
    }

    return channel.Endpoint{
        Host:           cc.Host,
        Port:           port,
        Instance:       cc.Instance,
        TDSVersion:     version,
        ServerType:     serverType,
        PacketSize:     cc.PacketSize,
        Domain:         cc.Domain,
        User:           cc.User,
        Password:       cc.Password,
        ConnectTimeout: time.Duration(cc.ConnectTimeoutMS) * time.Millisecond,
        TCPNoDelay:     cc.TCPNoDelay,
        KeepAlive:      cc.KeepAlive,
    }, nil
}
