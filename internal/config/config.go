// Package config loads hwinfo runtime settings from a JSON file, the
// environment and command-line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration read from JSON (optional).
type Config struct {
	Port        string `json:"port" validate:"required,numeric"`
	SystemName  string `json:"system_name"`
	NatsURL     string `json:"nats_url" validate:"required,url"`
	NatsSubject string `json:"nats_subject" validate:"required"`

	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb" validate:"gte=0"`
	LogMaxBackups int    `json:"log_max_backups" validate:"gte=0"`
	LogMaxAgeDays int    `json:"log_max_age_days" validate:"gte=0"`
	Verbose       bool   `json:"verbose"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		Port:          "9182",
		NatsURL:       "nats://127.0.0.1:4222",
		NatsSubject:   "hwinfo",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
	}
}

// Load reads filename over the defaults. On error the defaults are returned
// together with the error so the caller can log it and carry on.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Environment variables that override file values.
const (
	EnvPort        = "HWINFO_PORT"
	EnvSystemName  = "HWINFO_SYSTEM_NAME"
	EnvNatsURL     = "HWINFO_NATS_URL"
	EnvNatsSubject = "HWINFO_NATS_SUBJECT"
	EnvLogFile     = "HWINFO_LOG_FILE"
	EnvVerbose     = "HWINFO_VERBOSE"
)

// ApplyEnv loads the given .env files and applies HWINFO_* variables to cfg.
// With no files named it tries ".env" and ignores a missing one; a named file
// that cannot be loaded is an error and leaves cfg untouched.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	for env, dst := range map[string]*string{
		EnvPort:        &cfg.Port,
		EnvSystemName:  &cfg.SystemName,
		EnvNatsURL:     &cfg.NatsURL,
		EnvNatsSubject: &cfg.NatsSubject,
		EnvLogFile:     &cfg.LogFile,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Verbose = b
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks the merged configuration.
func Validate(cfg Config) error {
	return validate.Struct(cfg)
}
