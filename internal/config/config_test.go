package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"port": "9300", "system_name": "bench-01", "log_file": "hwinfo.log"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9300" || cfg.SystemName != "bench-01" || cfg.LogFile != "hwinfo.log" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.NatsURL != Default().NatsURL || cfg.NatsSubject != Default().NatsSubject {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"port": `), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if cfg != Default() {
		t.Fatalf("expected defaults after a parse error, got %+v", cfg)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("HWINFO_NATS_SUBJECT=telemetry.hw\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvPort, "9400")
	t.Setenv(EnvVerbose, "true")
	// godotenv never overrides a variable that is already set, even to "".
	os.Unsetenv(EnvNatsSubject)
	t.Cleanup(func() { os.Unsetenv(EnvNatsSubject) })

	cfg := Default()
	if err := ApplyEnv(&cfg, envFile); err != nil {
		t.Fatalf("apply env: %v", err)
	}

	if cfg.Port != "9400" || !cfg.Verbose {
		t.Fatalf("environment overrides not applied: %+v", cfg)
	}
	if cfg.NatsSubject != "telemetry.hw" {
		t.Fatalf("expected subject from .env, got %q", cfg.NatsSubject)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	bad := Default()
	bad.Port = "http"
	if err := Validate(bad); err == nil {
		t.Fatalf("expected non-numeric port to fail validation")
	}

	bad = Default()
	bad.NatsURL = ""
	if err := Validate(bad); err == nil {
		t.Fatalf("expected empty nats_url to fail validation")
	}

	bad = Default()
	bad.LogMaxBackups = -1
	if err := Validate(bad); err == nil {
		t.Fatalf("expected negative log_max_backups to fail validation")
	}
}

func TestApplyEnvMissingExplicitFile(t *testing.T) {
	t.Setenv(EnvPort, "9400")

	cfg := Default()
	err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatalf("expected an error for a named .env file that does not exist")
	}
	if cfg.Port != Default().Port {
		t.Fatalf("config should be untouched on error, got port %q", cfg.Port)
	}
}

func TestApplyEnvWithoutDotEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(EnvPort, "9500")

	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("a missing default .env must be ignored: %v", err)
	}
	if cfg.Port != "9500" {
		t.Fatalf("expected port from environment, got %q", cfg.Port)
	}
}
