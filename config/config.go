// Package config loads the application configuration for recgo-based
// services: artifact source, cache placement, retrieval tuning, and
// summarizer throttling.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SourceConfig selects where catalog artifacts are loaded from.
type SourceConfig struct {
	// Kind is one of "local", "minio", "s3".
	Kind string `yaml:"kind"`

	// LocalDir is the artifact directory for the local source.
	LocalDir string `yaml:"local_dir,omitempty"`

	// Endpoint is the object-storage endpoint (minio only).
	Endpoint string `yaml:"endpoint,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	UseSSL   bool   `yaml:"use_ssl,omitempty"`

	// Credentials are read from the environment, never from the file.
	AccessKeyEnv string `yaml:"access_key_env,omitempty"`
	SecretKeyEnv string `yaml:"secret_key_env,omitempty"`
}

// ArtifactsConfig names the catalog artifacts inside the source.
type ArtifactsConfig struct {
	Metadata           string `yaml:"metadata"`
	ProductEmbeddings  string `yaml:"product_embeddings"`
	CombinedEmbeddings string `yaml:"combined_embeddings"`
}

// CacheConfig configures the durable summary cache.
type CacheConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// Retention returns the retention window as a duration.
func (c CacheConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// RecommendConfig tunes the retrieval flow.
type RecommendConfig struct {
	DisplayK int `yaml:"display_k"`
	BufferK  int `yaml:"buffer_k"`
}

// SummarizerConfig throttles the summary collaborator.
type SummarizerConfig struct {
	MaxConcurrency    int     `yaml:"max_concurrency"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Config is the root application configuration structure.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Artifacts  ArtifactsConfig  `yaml:"artifacts"`
	Cache      CacheConfig      `yaml:"cache"`
	Recommend  RecommendConfig  `yaml:"recommend"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	LogLevel   string           `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:     "local",
			LocalDir: "./artifacts",
		},
		Artifacts: ArtifactsConfig{
			Metadata:           "metadata.json",
			ProductEmbeddings:  "product_embeddings.bin",
			CombinedEmbeddings: "combined_embeddings.bin",
		},
		Cache: CacheConfig{
			Path:          "./cache/summary_cache.json",
			RetentionDays: 30,
		},
		Recommend: RecommendConfig{
			DisplayK: 6,
			BufferK:  30,
		},
		Summarizer: SummarizerConfig{
			MaxConcurrency:    4,
			RequestsPerSecond: 0, // unlimited
			Burst:             1,
		},
		LogLevel: "info",
	}
}

// Load reads a config from the given path, layered over the defaults.
// A missing file returns the defaults. A .env file next to the process,
// if present, is loaded into the environment first so credential
// environment variables resolve.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case "local":
		if c.Source.LocalDir == "" {
			return fmt.Errorf("config: source.local_dir is required for the local source")
		}
	case "minio":
		if c.Source.Endpoint == "" || c.Source.Bucket == "" {
			return fmt.Errorf("config: source.endpoint and source.bucket are required for the minio source")
		}
	case "s3":
		if c.Source.Bucket == "" {
			return fmt.Errorf("config: source.bucket is required for the s3 source")
		}
	default:
		return fmt.Errorf("config: unknown source kind %q", c.Source.Kind)
	}

	if c.Recommend.DisplayK < 1 {
		return fmt.Errorf("config: recommend.display_k must be positive, got %d", c.Recommend.DisplayK)
	}
	if c.Recommend.BufferK < c.Recommend.DisplayK {
		return fmt.Errorf("config: recommend.buffer_k (%d) must be at least recommend.display_k (%d)",
			c.Recommend.BufferK, c.Recommend.DisplayK)
	}
	if c.Cache.RetentionDays < 1 {
		return fmt.Errorf("config: cache.retention_days must be positive, got %d", c.Cache.RetentionDays)
	}
	if c.Summarizer.MaxConcurrency < 1 {
		return fmt.Errorf("config: summarizer.max_concurrency must be positive, got %d", c.Summarizer.MaxConcurrency)
	}

	return nil
}

// Credentials resolves the configured credential environment variables.
func (c *SourceConfig) Credentials() (accessKey, secretKey string) {
	if c.AccessKeyEnv != "" {
		accessKey = os.Getenv(c.AccessKeyEnv)
	}
	if c.SecretKeyEnv != "" {
		secretKey = os.Getenv(c.SecretKeyEnv)
	}
	return accessKey, secretKey
}
