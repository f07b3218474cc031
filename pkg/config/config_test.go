package config

import (
    "os"
    "path/filepath"
    "testing"
)

func writeConfig(t *testing.T, body string) string {
    t.Helper()
    path := filepath.Join(t.TempDir(), "babble.yaml")
    if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
        t.Fatalf("write config: %v", err)
    }
    return path
}

func TestDefaultsValidate(t *testing.T) {
    cfg := Default()
    if err := cfg.validate(); err != nil {
        t.Fatalf("defaults must validate: %v", err)
    }
    if cfg.Bridge.ListenAddr != "127.0.0.1:8884" {
        t.Fatalf("default listen addr = %q", cfg.Bridge.ListenAddr)
    }
    if cfg.Bridge.AddressPrefix != "/" {
        t.Fatalf("default address prefix = %q", cfg.Bridge.AddressPrefix)
    }
}

func TestLoadFromFile(t *testing.T) {
    path := writeConfig(t, `
app_name: test-bridge
log:
  level: debug
  format: json
bridge:
  address_prefix: /avatar/parameters/
  listen_addr: 127.0.0.1:9884
  batch_content_type: application/cbor
`)
    cfg, err := Load(path)
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.AppName != "test-bridge" {
        t.Fatalf("app_name = %q", cfg.AppName)
    }
    if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
        t.Fatalf("log config = %+v", cfg.Log)
    }
    if cfg.Bridge.AddressPrefix != "/avatar/parameters/" {
        t.Fatalf("address_prefix = %q", cfg.Bridge.AddressPrefix)
    }
    if cfg.Bridge.ListenAddr != "127.0.0.1:9884" {
        t.Fatalf("listen_addr = %q", cfg.Bridge.ListenAddr)
    }
    if cfg.Bridge.BatchContentType != "application/cbor" {
        t.Fatalf("batch_content_type = %q", cfg.Bridge.BatchContentType)
    }
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
    path := writeConfig(t, "app_name: sparse\n")
    cfg, err := Load(path)
    if err != nil { t.Fatalf("load: %v", err) }
    if cfg.Bridge.ListenAddr != "127.0.0.1:8884" {
        t.Fatalf("listen_addr default lost: %q", cfg.Bridge.ListenAddr)
    }
    if cfg.Log.Level != "info" {
        t.Fatalf("log level default lost: %q", cfg.Log.Level)
    }
}

func TestLoadRejectsBadValues(t *testing.T) {
    cases := []struct {
        name string
        body string
    }{
        {"bad log level", "log:\n  level: noisy\n"},
        {"prefix without slash", "bridge:\n  address_prefix: avatar\n"},
        {"unparseable listen addr", "bridge:\n  listen_addr: not-an-addr\n"},
        {"unknown content type", "bridge:\n  batch_content_type: application/xml\n"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            path := writeConfig(t, tc.body)
            if _, err := Load(path); err == nil {
                t.Fatalf("expected validation error")
            }
        })
    }
}
