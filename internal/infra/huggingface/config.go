package huggingface

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gianpd/summarizerAI/pkg/config"
)

// DefaultBaseURL is the hosted Inference API.
const DefaultBaseURL = "https://api-inference.huggingface.co"

// Config holds the settings shared by every Inference API client.
type Config struct {
	// BaseURL is the API root; models are addressed as {BaseURL}/models/{model}.
	BaseURL string

	// Token is sent as a bearer token. Anonymous calls are heavily throttled.
	Token string

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the outbound token bucket.
	RequestsPerSecond float64
	Burst             int

	// WaitForModel asks the API to block until a cold model is loaded instead
	// of answering 503.
	WaitForModel bool
}

// DefaultConfig returns the default Inference API configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		Timeout:           60 * time.Second,
		RequestsPerSecond: 2,
		Burst:             4,
		WaitForModel:      true,
	}
}

// LoadConfigFromEnv reads HF_BASE_URL, HF_TOKEN, HF_TIMEOUT, HF_REQUESTS_PER_SECOND,
// HF_BURST and HF_WAIT_FOR_MODEL.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		BaseURL:           config.GetEnvString("HF_BASE_URL", def.BaseURL),
		Token:             config.GetEnvString("HF_TOKEN", ""),
		Timeout:           config.GetEnvDuration("HF_TIMEOUT", def.Timeout),
		RequestsPerSecond: config.GetEnvFloat("HF_REQUESTS_PER_SECOND", def.RequestsPerSecond),
		Burst:             config.GetEnvInt("HF_BURST", def.Burst),
		WaitForModel:      config.GetEnvBool("HF_WAIT_FOR_MODEL", def.WaitForModel),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("huggingface config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL %q must be an absolute http(s) URL", c.BaseURL)
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d", c.Burst)
	}
	return nil
}
