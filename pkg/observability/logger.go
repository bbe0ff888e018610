// Package observability contains logging setup for tdslink.
package observability

import (
    "os"
    "strings"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "gopkg.in/natefinch/lumberjack.v2"

    "tdslink/pkg/config"
)

// SetupLogger builds a zap.Logger from the provided configuration, sets it as
// the global logger, and redirects the stdlib log package. The caller should
// defer logger.Sync().
func SetupLogger(c config.LogConfig) (*zap.Logger, error) {
    level := zap.NewAtomicLevel()
    switch strings.ToLower(c.Level) {
    case "debug":
        level.SetLevel(zap.DebugLevel)
    case "warn", "warning":
        level.SetLevel(zap.WarnLevel)
    case "error":
        level.SetLevel(zap.ErrorLevel)
    default:
        level.SetLevel(zap.InfoLevel)
    }

    var encCfg zapcore.EncoderConfig
    if c.Development {
        encCfg = zap.NewDevelopmentEncoderConfig()
        encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
    } else {
        encCfg = zap.NewProductionEncoderConfig()
    }
    var encoder zapcore.Encoder
    if strings.ToLower(c.Format) == "json" {
        encoder = zapcore.NewJSONEncoder(encCfg)
    } else {
        encoder = zapcore.NewConsoleEncoder(encCfg)
    }

    var cores []zapcore.Core
    for _, out := range c.Outputs {
        cores = append(cores, zapcore.NewCore(encoder, sink(out, c), level))
    }
    core := zapcore.NewTee(cores...)

    opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)}
    if c.Development {
        opts = append(opts, zap.Development())
    }

    logger := zap.New(core, opts...)
    zap.ReplaceGlobals(logger)
    _, _ = zap.RedirectStdLogAt(logger, zap.InfoLevel)
    return logger, nil
}

// sink maps an output name to a write syncer; anything that is not
// stdout/stderr is treated as a file path, rotated when enabled.
func sink(out string, c config.LogConfig) zapcore.WriteSyncer {
    switch strings.ToLower(out) {
    case "stdout":
        return zapcore.AddSync(os.Stdout)
    case "stderr":
        return zapcore.AddSync(os.Stderr)
    }
    if c.Rotation.Enable {
        return zapcore.AddSync(&lumberjack.Logger{
            Filename:   out,
            MaxSize:    max(c.Rotation.MaxSizeMB, 10),
            MaxBackups: max(c.Rotation.MaxBackups, 1),
            MaxAge:     max(c.Rotation.MaxAgeDays, 7),
            Compress:   c.Rotation.Compress,
        })
    }
    if i := strings.LastIndexAny(out, "/\\"); i > 0 {
        _ = os.MkdirAll(out[:i], 0o755)
    }
    f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
    if err != nil {
        return zapcore.AddSync(os.Stderr)
    }
    return zapcore.AddSync(f)
}
