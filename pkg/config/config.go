// Package config provides YAML-based configuration loading for babble-web.
package config

import (
    "errors"
    "fmt"
    "net"
    "os"
    "path/filepath"
    "strings"

    "github.com/spf13/viper"
)

// Config is the root application configuration.
type Config struct {
    // AppName optional logical name of the bridge process
    AppName string `mapstructure:"app_name"`

    // Log holds logging configuration
    Log LogConfig `mapstructure:"log"`

    // Bridge holds the OSC/UDP bridge options
    Bridge BridgeConfig `mapstructure:"bridge"`
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
    Enable     bool `mapstructure:"enable"`
    MaxSizeMB  int  `mapstructure:"max_size_mb"`
    MaxBackups int  `mapstructure:"max_backups"`
    MaxAgeDays int  `mapstructure:"max_age_days"`
    Compress   bool `mapstructure:"compress"`
}

// BridgeConfig holds the OSC forwarding and UDP listener options.
type BridgeConfig struct {
    // AddressPrefix is prepended to channel names when building OSC address
    // patterns. "/" yields /jawOpen; VRChat-style consumers want
    // "/avatar/parameters/".
    AddressPrefix string `mapstructure:"address_prefix"`

    // ListenAddr is the fixed local address the inbound UDP listener binds.
    ListenAddr string `mapstructure:"listen_addr"`

    // BatchContentType selects the codec for batch payloads arriving over the
    // notification bus: application/json or application/cbor.
    BatchContentType string `mapstructure:"batch_content_type"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
    return &Config{
        AppName: "babble-bridge",
        Log: LogConfig{
            Level:       "info",
            Format:      "console",
            Outputs:     []string{"stdout"},
            Development: true,
            Rotation: RotationConfig{
                Enable:     false,
                MaxSizeMB:  50,
                MaxBackups: 3,
                MaxAgeDays: 28,
                Compress:   true,
            },
        },
        Bridge: BridgeConfig{
            AddressPrefix:    "/",
            ListenAddr:       "127.0.0.1:8884",
            BatchContentType: "application/json",
        },
    }
}

// Load reads configuration from the provided path (if non-empty), otherwise
// it searches common locations and supports environment overrides.
// Environment variables use the prefix BABBLE and `.`/`-` are replaced with
// `_`. Example: BABBLE_LOG_LEVEL=debug
func Load(path string) (*Config, error) {
    cfg := Default()

    v := viper.New()
    v.SetConfigType("yaml")
    v.SetEnvPrefix("BABBLE")
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
    v.SetDefault("bridge.address_prefix", cfg.Bridge.AddressPrefix)
    v.SetDefault("bridge.listen_addr", cfg.Bridge.ListenAddr)
    v.SetDefault("bridge.batch_content_type", cfg.Bridge.BatchContentType)

    if path == "" {
        if envPath := os.Getenv("BABBLE_CONFIG"); envPath != "" {
            path = envPath
        }
    }

    if path != "" {
        v.SetConfigFile(path)
    } else {
        // Search common locations with base name `babble`
        v.SetConfigName("babble")
        v.AddConfigPath(".")
        v.AddConfigPath("./configs")
        if home, err := os.UserHomeDir(); err == nil {
            v.AddConfigPath(filepath.Join(home, ".babble"))
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
        c.Log.Outputs = []string{"stdout"}
    }

    if !strings.HasPrefix(c.Bridge.AddressPrefix, "/") {
        return fmt.Errorf("invalid bridge.address_prefix: %q (must start with /)", c.Bridge.AddressPrefix)
    }
    if _, _, err := net.SplitHostPort(c.Bridge.ListenAddr); err != nil {
        return fmt.Errorf("invalid bridge.listen_addr: %q: %w", c.Bridge.ListenAddr, err)
    }
    switch c.Bridge.BatchContentType {
    case "application/json", "application/cbor":
        // ok
    default:
        return fmt.Errorf("invalid bridge.batch_content_type: %q", c.Bridge.BatchContentType)
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
