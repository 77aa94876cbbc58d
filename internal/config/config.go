// Package config loads clubsite settings from defaults, an optional YAML file
// and the environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvConfig       = "CLUBSITE_CONFIG"
	EnvBackendURL   = "CLUBSITE_BACKEND_URL"
	EnvLogLevel     = "CLUBSITE_LOG_LEVEL"
	EnvLogFile      = "CLUBSITE_LOG_FILE"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvServiceName  = "OTEL_SERVICE_NAME"
)

// LogToStderr as Log.File sends logs to stderr instead of a file.
const LogToStderr = "-"

// Config is the full runtime configuration.
type Config struct {
	// BackendURL prefixes every resource key. Empty means keys are used as-is.
	BackendURL  string        `yaml:"backend_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	Log         LogConfig     `yaml:"log"`
	Trace       TraceConfig   `yaml:"trace"`
}

// LogConfig controls the zerolog sink.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TraceConfig controls the optional OTLP exporter.
type TraceConfig struct {
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "clubsite.log"),
		},
		Trace: TraceConfig{ServiceName: "clubsite"},
	}
}

// Load builds a Config from defaults, then the YAML file at path (or
// $CLUBSITE_CONFIG when path is empty), then environment overrides.
// A missing file is only an error when it was named explicitly. The result is
// not validated; callers apply their own overrides first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if explicit {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		env string
		dst *string
	}{
		{EnvBackendURL, &c.BackendURL},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFile, &c.Log.File},
		{EnvOTLPEndpoint, &c.Trace.Endpoint},
		{EnvServiceName, &c.Trace.ServiceName},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

// Validate reports every invalid value at once.
func (c Config) Validate() error {
	var errs []error
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("backend_url: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("backend_url: scheme must be http or https, got %q", c.BackendURL))
		}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.HTTPTimeout < 0 {
		errs = append(errs, errors.New("http_timeout: must not be negative"))
	}
	return errors.Join(errs...)
}
