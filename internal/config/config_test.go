package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/client360/internal/errors"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Shell.Index != DefaultIndex {
		t.Errorf("Shell.Index = %q, want %q", cfg.Shell.Index, DefaultIndex)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.UsesS3() {
		t.Error("defaults should serve the shell from disk")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvLogLevel, "")
	tmpDir := t.TempDir()

	// A missing file gives defaults.
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("Path() = %q, want empty", cfg.Path())
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "server": {
    "host": "0.0.0.0",
    "port": 9090,
    "shutdownTimeout": "3s"
  },
  "shell": {
    "s3": {
      "bucket": "client360-shell",
      "prefix": "releases/42"
    }
  },
  "metrics": {
    "path": "/internal/metrics"
  },
  "log": {
    "level": "debug",
    "format": "json"
  }
}
`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if d, _ := cfg.ShutdownTimeout(); d != 3*time.Second {
		t.Errorf("ShutdownTimeout() = %v", d)
	}
	if !cfg.UsesS3() || cfg.Shell.S3.Prefix != "releases/42" {
		t.Errorf("Shell.S3 = %+v", cfg.Shell.S3)
	}
	if cfg.Shell.Index != DefaultIndex {
		t.Errorf("Shell.Index = %q, want default", cfg.Shell.Index)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled should keep its default when omitted")
	}
	if cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("Metrics.Path = %q", cfg.Metrics.Path)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "client360.yaml")
	content := `server:
  port: 7070
tracing:
  enabled: false
log:
  level: warn
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Server.Port != 7070 || cfg.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled should be false")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil || !strings.Contains(err.Error(), "E100") {
		t.Fatalf("expected E100, got %v", err)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("{\n  \"server\": {\n    \"port\": ,\n  }\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	e, ok := err.(*errors.Error)
	if !ok {
		t.Fatalf("error type = %T, want *errors.Error", err)
	}
	if e.Code != "E101" {
		t.Errorf("Code = %q, want E101", e.Code)
	}
	if e.Location == nil || e.Location.Line != 3 {
		t.Fatalf("Location = %+v, want line 3", e.Location)
	}
	if len(e.Context) == 0 {
		t.Error("expected surrounding lines in Context")
	}
}

func TestLoadFile_WrongType(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(`{"server": {"port": "eighty"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	e, ok := err.(*errors.Error)
	if !ok || e.Code != "E101" {
		t.Fatalf("err = %v, want E101", err)
	}
	if e.Location == nil || e.Location.Line != 1 {
		t.Errorf("Location = %+v, want line 1", e.Location)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAddr:     ":9443",
		EnvLogLevel: "error",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Address() != "localhost:9443" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}

	if err := New().ApplyEnv(noEnv); err != nil {
		t.Errorf("ApplyEnv with no env: %v", err)
	}

	err = New().ApplyEnv(envMap(map[string]string{EnvAddr: "not-an-address"}))
	if err == nil || !strings.Contains(err.Error(), "E102") {
		t.Errorf("expected E102 for bad address, got %v", err)
	}
}

func TestSetAddress(t *testing.T) {
	tests := []struct {
		addr    string
		want    string
		wantErr bool
	}{
		{"0.0.0.0:80", "0.0.0.0:80", false},
		{":3000", "localhost:3000", false},
		{"[::1]:8080", "[::1]:8080", false},
		{"host", "", true},
		{"host:http", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			cfg := New()
			err := cfg.SetAddress(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetAddress(%q) error = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Address() != tt.want {
				t.Errorf("Address() = %q, want %q", cfg.Address(), tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Server.Port = -1 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"bad timeout", func(c *Config) { c.Server.ShutdownTimeout = "soon" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"index with directory", func(c *Config) { c.Shell.Index = "app/index.html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !strings.Contains(err.Error(), "E102") {
				t.Errorf("error = %v, want E102", err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel should reject unknown names")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "component", "test")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"component":"test"`) {
		t.Errorf("json output = %q", out)
	}

	buf.Reset()
	cfg.Log.Format = "text"
	cfg.Logger(&buf).Warn("plain")
	if !strings.Contains(buf.String(), "msg=plain") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset    int64
		line, col int
	}{
		{0, 1, 1},
		{2, 1, 2},
		{4, 2, 1},
		{8, 3, 2},
		{100, 3, 2},
	}
	for _, tt := range tests {
		line, col := position(data, tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
