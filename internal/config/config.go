package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	RateLimitBackendMemory = "memory"
	RateLimitBackendRedis  = "redis"
)

// Config is loaded once at startup and must not be mutated afterwards.
type Config struct {
	Service   Service   `envconfig:"SERVICE"`
	Pixel     Pixel     `envconfig:"FACEBOOK"`
	Webhook   Webhook   `envconfig:"WEBHOOK"`
	RateLimit RateLimit `envconfig:"RATE_LIMIT"`
	Tracing   Tracing   `envconfig:"OTEL"`
}

type Service struct {
	Environment    string   `envconfig:"ENVIRONMENT" default:"development"`
	Port           string   `envconfig:"PORT" default:"3000"`
	SwaggerHost    string   `envconfig:"SWAGGER_HOST" default:"localhost:3000"`
	Version        string   `envconfig:"VERSION" default:"1.0.0"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	MaxBodyBytes   int64    `envconfig:"MAX_BODY_BYTES" default:"10485760"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// Pixel holds the Conversions API credentials.
type Pixel struct {
	ID            string `envconfig:"PIXEL_ID" required:"true"`
	AccessToken   string `envconfig:"ACCESS_TOKEN" required:"true"`
	TestEventCode string `envconfig:"TEST_EVENT_CODE"`
	APIVersion    string `envconfig:"API_VERSION" default:"v18.0"`
	GraphURL      string `envconfig:"GRAPH_URL" default:"https://graph.facebook.com"`
}

type Webhook struct {
	VerifyToken string `envconfig:"VERIFY_TOKEN"`
}

type RateLimit struct {
	Enabled  bool          `envconfig:"ENABLED" default:"true"`
	Requests int           `envconfig:"REQUESTS" default:"100"`
	Window   time.Duration `envconfig:"WINDOW" default:"15m"`
	Backend  string        `envconfig:"BACKEND" default:"memory"`
	RedisURL string        `envconfig:"REDIS_URL"`
	FailOpen bool          `envconfig:"FAIL_OPEN" default:"true"`
}

type Tracing struct {
	Enabled     bool    `envconfig:"TRACING_ENABLED" default:"false"`
	Endpoint    string  `envconfig:"EXPORTER_OTLP_ENDPOINT" default:"localhost:4318"`
	SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if c.Pixel.ID == "" || c.Pixel.AccessToken == "" {
		return fmt.Errorf("FACEBOOK_PIXEL_ID and FACEBOOK_ACCESS_TOKEN are required")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.RateLimit.Requests)
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimit.Window)
		}

		switch c.RateLimit.Backend {
		case RateLimitBackendMemory:
		case RateLimitBackendRedis:
			if c.RateLimit.RedisURL == "" {
				return fmt.Errorf("RATE_LIMIT_REDIS_URL is required for the redis backend")
			}
		default:
			return fmt.Errorf("unknown RATE_LIMIT_BACKEND %q (supported: memory, redis)", c.RateLimit.Backend)
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}

	return nil
}
