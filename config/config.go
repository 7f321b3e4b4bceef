package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tbxark/formsubmit/logger"
)

type Config struct {
	Log        logger.Config    `yaml:"log"`
	Submission SubmissionConfig `yaml:"submission"`
	Store      StoreConfig      `yaml:"store"`
}

type SubmissionConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Path     string        `yaml:"path"`
	Token    string        `yaml:"token"`
	Timeout  time.Duration `yaml:"timeout"`
	Async    bool          `yaml:"async"` // fire-and-forget, the form never returns to idle
}

// URL joins the endpoint and the submit path.
func (s SubmissionConfig) URL() string {
	return strings.TrimRight(s.Endpoint, "/") + "/" + strings.TrimLeft(s.Path, "/")
}

type StoreConfig struct {
	Redis   RedisConfig              `yaml:"redis"`
	TTL     time.Duration            `yaml:"ttl"`
	FormTTL map[string]time.Duration `yaml:"form_ttl"` // per form name, overrides TTL
}

// RedisConfig selects the Redis draft store. An empty Addr keeps drafts in
// memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

const (
	EnvAPIURL   = "API_URL"
	EnvAPIToken = "GIA_API_TOKEN"
)

var GlobalConfig *Config

func Default() *Config {
	return &Config{
		Log: logger.Config{Level: "info", Format: "text"},
		Submission: SubmissionConfig{
			Endpoint: "http://localhost:4000",
			Path:     "/api/workflow/forms/submit",
			Timeout:  30 * time.Second,
		},
		Store: StoreConfig{TTL: 24 * time.Hour},
	}
}

// Load reads the YAML file at path. A missing file is not an error and
// yields the defaults. API_URL and GIA_API_TOKEN override the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	// Set defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Submission.Endpoint == "" {
		cfg.Submission.Endpoint = "http://localhost:4000"
	}
	if cfg.Submission.Path == "" {
		cfg.Submission.Path = "/api/workflow/forms/submit"
	}
	if cfg.Submission.Timeout <= 0 {
		cfg.Submission.Timeout = 30 * time.Second
	}
	if cfg.Store.TTL <= 0 {
		cfg.Store.TTL = 24 * time.Hour
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.Submission.Endpoint = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		cfg.Submission.Token = v
	}

	GlobalConfig = cfg
	return cfg, nil
}
