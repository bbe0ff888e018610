// Package config provides YAML-based configuration loading for tdslink.
package config

import (
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/spf13/viper"

    "tdslink/pkg/tds"
)

// Config is the root application configuration.
type Config struct {
    // AppName optional logical name of the client/application
    AppName string `mapstructure:"app_name"`

    // Log holds logging configuration
    Log LogConfig `mapstructure:"log"`

    // Connection describes the server endpoint and transport options
    Connection Connection `mapstructure:"connection"`
}

// LogConfig defines logger settings.
type LogConfig struct {
    // Level: debug, info, warn, error
    Level string `mapstructure:"level"`
    // Format: console or json
    Format string `mapstructure:"format"`
    // Outputs: list of outputs: stdout, stderr, or file paths
    Outputs []string `mapstructure:"outputs"`

    // Rotation controls file rotation when writing to files
    Rotation RotationConfig `mapstructure:"rotation"`
    // Development toggles development-friendly logging options
    Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
    Enable     bool   `mapstructure:"enable"`
    MaxSizeMB  int    `mapstructure:"max_size_mb"`
    MaxBackups int    `mapstructure:"max_backups"`
    MaxAgeDays int    `mapstructure:"max_age_days"`
    Compress   bool   `mapstructure:"compress"`
}

// Connection describes one server endpoint.
// Example YAML:
// connection:
//   transport: tcp            # tcp | pipe
//   host: db.example.com
//   port: 0                   # 0 = default, or browser lookup when instance set
//   instance: SQLEXPRESS
//   tds_version: "8.0"
//   server_type: sqlserver
//   packet_size: 0            # 0 = version default
//   connect_timeout_ms: 5000
//   login_timeout_ms: 15000
//   socket_timeout_ms: 0
//   tcp_no_delay: true
//   keep_alive: false
type Connection struct {
    Transport string `mapstructure:"transport"`
    Host      string `mapstructure:"host"`
    Port      int    `mapstructure:"port"`
    Instance  string `mapstructure:"instance"`

    TDSVersion string `mapstructure:"tds_version"`
    ServerType string `mapstructure:"server_type"`
    PacketSize int    `mapstructure:"packet_size"`

    Domain   string `mapstructure:"domain"`
    User     string `mapstructure:"user"`
    Password string `mapstructure:"password"`

    ConnectTimeoutMS int `mapstructure:"connect_timeout_ms"`
    LoginTimeoutMS   int `mapstructure:"login_timeout_ms"`
    SocketTimeoutMS  int `mapstructure:"socket_timeout_ms"`

    TCPNoDelay bool `mapstructure:"tcp_no_delay"`
    KeepAlive  bool `mapstructure:"keep_alive"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
    return &Config{
        AppName: "tdslink",
        Log: LogConfig{
            Level:       "info",
            Format:      "console",
            Outputs:     []string{"stderr"},
            Development: false,
            Rotation: RotationConfig{
                Enable:     false,
                MaxSizeMB:  50,
                MaxBackups: 3,
                MaxAgeDays: 28,
                Compress:   true,
            },
        },
        Connection: Connection{
            Transport:        "tcp",
            Host:             "localhost",
            Port:             0,
            TDSVersion:       "8.0",
            ServerType:       "sqlserver",
            PacketSize:       0,
            ConnectTimeoutMS: 5000,
            LoginTimeoutMS:   15000,
            TCPNoDelay:       true,
        },
    }
}

// Load reads configuration from the provided path (if non-empty),
// otherwise it searches common locations and supports environment overrides.
// Environment variables use the prefix TDSLINK and `.`/`-` are replaced with `_`.
// Example: TDSLINK_CONNECTION_HOST=db1
func Load(path string) (*Config, error) {
    cfg := Default()

    v := viper.New()
    v.SetConfigType("yaml")
    v.SetEnvPrefix("TDSLINK")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
    v.AutomaticEnv()

    // seed defaults for viper so env-only configs work
    v.SetDefault("app_name", cfg.AppName)
    v.SetDefault("log.level", cfg.Log.Level)
    v.SetDefault("log.format", cfg.Log.Format)
    v.SetDefault("log.outputs", cfg.Log.Outputs)
    v.SetDefault("log.development", cfg.Log.Development)
    v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
    v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
    v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
    v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
    v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)
    v.SetDefault("connection.transport", cfg.Connection.Transport)
    v.SetDefault("connection.host", cfg.Connection.Host)
    v.SetDefault("connection.port", cfg.Connection.Port)
    v.SetDefault("connection.instance", cfg.Connection.Instance)
    v.SetDefault("connection.tds_version", cfg.Connection.TDSVersion)
    v.SetDefault("connection.server_type", cfg.Connection.ServerType)
    v.SetDefault("connection.packet_size", cfg.Connection.PacketSize)
    v.SetDefault("connection.domain", cfg.Connection.Domain)
    v.SetDefault("connection.user", cfg.Connection.User)
    v.SetDefault("connection.password", cfg.Connection.Password)
    v.SetDefault("connection.connect_timeout_ms", cfg.Connection.ConnectTimeoutMS)
    v.SetDefault("connection.login_timeout_ms", cfg.Connection.LoginTimeoutMS)
    v.SetDefault("connection.socket_timeout_ms", cfg.Connection.SocketTimeoutMS)
    v.SetDefault("connection.tcp_no_delay", cfg.Connection.TCPNoDelay)
    v.SetDefault("connection.keep_alive", cfg.Connection.KeepAlive)

    // Choose config file
    if path == "" {
        if envPath := os.Getenv("TDSLINK_CONFIG"); envPath != "" {
            path = envPath
        }
    }

    if path != "" {
        v.SetConfigFile(path)
    } else {
        // Search common locations with base name `tdslink`
        v.SetConfigName("tdslink")
        v.AddConfigPath(".")
        v.AddConfigPath("./configs")
        if home, err := os.UserHomeDir(); err == nil {
            v.AddConfigPath(filepath.Join(home, ".tdslink"))
        }
    }

    // Read config file if present; if not found, continue with defaults/env
    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if !errors.As(err, &notFound) {
            return nil, fmt.Errorf("read config: %w", err)
        }
    }

    if err := v.Unmarshal(&cfg); err != nil {
        return nil, fmt.Errorf("decode config: %w", err)
    }

    if err := cfg.validate(); err != nil {
        return nil, err
    }
    return cfg, nil
}

func (c *Config) validate() error {
    lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
    switch lvl {
    case "debug", "info", "warn", "warning", "error":
        // ok
    default:
        return fmt.Errorf("invalid log.level: %q", c.Log.Level)
    }
    if c.Log.Format == "" {
        c.Log.Format = "console"
    }
    if len(c.Log.Outputs) == 0 {
        c.Log.Outputs = []string{"stderr"}
    }

    cc := &c.Connection
    cc.Transport = strings.ToLower(strings.TrimSpace(cc.Transport))
    switch cc.Transport {
    case "tcp", "pipe":
        // ok
    default:
        return fmt.Errorf("invalid connection.transport: %q", cc.Transport)
    }
    if strings.TrimSpace(cc.Host) == "" {
        return errors.New("connection.host is required")
    }
    if cc.Port < 0 || cc.Port > 65535 {
        return fmt.Errorf("invalid connection.port: %d", cc.Port)
    }
    if _, err := tds.ParseVersion(cc.TDSVersion); err != nil {
        return err
    }
    cc.ServerType = strings.ToLower(strings.TrimSpace(cc.ServerType))
    if _, err := tds.ParseServerType(cc.ServerType); err != nil {
        return err
    }
    if cc.PacketSize != 0 && (cc.PacketSize < tds.MinPacketSize || cc.PacketSize > tds.MaxPacketSize) {
        return fmt.Errorf("connection.packet_size %d outside [%d, %d]",
            cc.PacketSize, tds.MinPacketSize, tds.MaxPacketSize)
    }
    if cc.ConnectTimeoutMS < 0 || cc.LoginTimeoutMS < 0 || cc.SocketTimeoutMS < 0 {
        return errors.New("connection timeouts must be non-negative")
    }
    return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
    cfg, err := Load(path)
    if err != nil {
        panic(err)
    }
    return cfg
}
