package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host               string        `envconfig:"HOST" default:"0.0.0.0"`
	Port               string        `envconfig:"PORT" default:"8080"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"120s"`
	MaxRequestBodySize int64         `envconfig:"MAX_REQUEST_BODY_SIZE" default:"10485760"` // 10MB

	// Empty means any origin / any image type.
	AllowedOrigins    []string `envconfig:"CORS_ALLOWED_ORIGINS"`
	AllowedImageTypes []string `envconfig:"ALLOWED_IMAGE_TYPES"`

	Gemini GeminiConfig
}

type GeminiConfig struct {
	APIKey           string        `envconfig:"GEMINI_API_KEY" required:"true"`
	Model            string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	CallTimeout      time.Duration `envconfig:"GEMINI_CALL_TIMEOUT" default:"30s"`
	MaxRetries       int           `envconfig:"GEMINI_MAX_RETRIES" default:"2"`
	RetryBaseDelay   time.Duration `envconfig:"GEMINI_RETRY_BASE_DELAY" default:"500ms"`
	RetryMaxDelay    time.Duration `envconfig:"GEMINI_RETRY_MAX_DELAY" default:"5s"`
	ParallelFindings bool          `envconfig:"PARALLEL_FINDINGS" default:"true"`
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// LoadFromEnv reads the configuration from the process environment.
// A missing GEMINI_API_KEY is an error.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges envconfig cannot express
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY must not be blank")
	}
	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid PORT: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.RequestTimeout <= 0 || c.Gemini.CallTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, call=%s)",
			c.RequestTimeout, c.Gemini.CallTimeout)
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("GEMINI_MAX_RETRIES must be >= 0 (got %d)", c.Gemini.MaxRetries)
	}
	if c.Gemini.RetryBaseDelay < 0 || c.Gemini.RetryMaxDelay < c.Gemini.RetryBaseDelay {
		return fmt.Errorf("invalid retry delays (base=%s, max=%s)",
			c.Gemini.RetryBaseDelay, c.Gemini.RetryMaxDelay)
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return fmt.Errorf("GEMINI_MODEL must not be blank")
	}
	return nil
}
