package main

import (
    "context"
    "os"
    "time"

    "go.uber.org/zap"

    "tdslink/pkg/channel"
    "tdslink/pkg/channels"
    "tdslink/pkg/config"
    "tdslink/pkg/observability"
)

// run is the main entry point after CLI parsing.
func run(opts Options) int {
    cfg, err := config.Load(opts.ConfigPath)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
        return 1
    }
    if opts.Host != "" {
        cfg.Connection.Host = opts.Host
    }
    if opts.Instance != "" {
        cfg.Connection.Instance = opts.Instance
    }
    if opts.Transport != "" {
        cfg.Connection.Transport = opts.Transport
    }

    logger, err := observability.SetupLogger(cfg.Log)
    if err != nil {
        _, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
        return 1
    }
    defer func() { _ = logger.Sync() }()

    zap.L().Info("tdslink-probe started",
        zap.String("transport", cfg.Connection.Transport),
        zap.String("host", cfg.Connection.Host),
        zap.String("instance", cfg.Connection.Instance))

    ctx := context.Background()
    loginTimeout := time.Duration(cfg.Connection.LoginTimeoutMS) * time.Millisecond

    start := time.Now()
    ch, err := channels.Open(ctx, cfg.Connection)
    if err != nil {
        zap.L().Error("connect failed", zap.Error(err))
        return 1
    }

    // Guard the (future) login exchange; the probe only holds the channel
    // open briefly, but a stalled pipe would otherwise hang forever.
    var g *channel.Guard
    if loginTimeout > 0 {
        g = channel.Watch(ch, loginTimeout)
    }

    zap.L().Info("connected",
        zap.String("addr", ch.Addr()),
        zap.Duration("latency", time.Since(start)),
        zap.Bool("native_timeout", ch.HasNativeTimeout()))

    closeErr := ch.Close()
    if g != nil && g.Stop() {
        zap.L().Error("probe aborted by login timeout")
        return 1
    }
    if closeErr != nil {
        zap.L().Warn("close failed", zap.Error(closeErr))
        return 1
    }
    return 0
}
