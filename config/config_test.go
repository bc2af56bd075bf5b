package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/seqkit/sources/kafkastream"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging defaults applied, got %+v", cfg.Logging)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "staging"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"bad environment", ServiceConfig{Name: "svc", Environment: "lab"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.Logging.ApplyDefaults()
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: ingest
environment: staging
scan:
  separator: "---"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type scanCfg struct {
		Separator string `mapstructure:"separator"`
	}
	type testConfig struct {
		ServiceConfig `mapstructure:",squash"`
		Scan          scanCfg `mapstructure:"scan"`
	}

	var cfg testConfig
	if err := LoadConfig("ingest", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "ingest" {
		t.Errorf("expected name 'ingest', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Scan.Separator != "---" {
		t.Errorf("expected separator '---', got %q", cfg.Scan.Separator)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	if err := os.WriteFile(configPath, []byte("scan:\n  separator: \"---\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SCAN_SEPARATOR", "===")

	type testConfig struct {
		Scan struct {
			Separator string `mapstructure:"separator"`
		} `mapstructure:"scan"`
	}

	var cfg testConfig
	if err := LoadConfig("ingest", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Scan.Separator != "===" {
		t.Errorf("expected env to win, got %q", cfg.Scan.Separator)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	type testConfig struct {
		ServiceConfig `mapstructure:",squash"`
	}

	var cfg testConfig
	if err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool   { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/ingest/config.yml": true,
		"../.env":                 true,
	}}
	resolver := &Resolver{FileSystem: fs}

	files := resolver.ResolveFiles("ingest", LoaderConfig{})
	if files.ConfigFile != "./cmd/ingest/config.yml" {
		t.Errorf("config file = %q, want ./cmd/ingest/config.yml", files.ConfigFile)
	}
	if files.EnvFile != "../.env" {
		t.Errorf("env file = %q, want ../.env", files.EnvFile)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}

	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("config file = %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("env file = %q", lc.EnvFile)
	}
}

func TestLoadConfigEmbedsSourceConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")

	yamlContent := `
name: ingest
environment: staging
kafka:
  brokers:
    - kafka-1:9092
    - kafka-2:9092
  topic: events
  read_timeout: 30s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	type appConfig struct {
		ServiceConfig `mapstructure:",squash"`
		Kafka         kafkastream.Config `mapstructure:"kafka"`
	}

	var cfg appConfig
	if err := LoadConfig("ingest", &cfg, WithConfigFile(configPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "kafka-1:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.Topic != "events" {
		t.Errorf("topic = %q, want events", cfg.Kafka.Topic)
	}
	if cfg.Kafka.ReadTimeout != "30s" {
		t.Errorf("read timeout = %q, want 30s", cfg.Kafka.ReadTimeout)
	}

	cfg.Kafka.ApplyDefaults()
	if err := cfg.Kafka.Validate(); err != nil {
		t.Errorf("loaded source config must validate: %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("KAFKA_READ_TIMEOUT")

	for _, want := range []string{"kafka_read_timeout", "kafka.read.timeout", "kafka.read_timeout"} {
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("variants %v missing %q", got, want)
		}
	}
}
