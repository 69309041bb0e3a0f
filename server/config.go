package server

import (
	"github.com/kbukum/depbatch/server/middleware"
	"github.com/kbukum/depbatch/validation"
)

// Config holds HTTP server configuration. Timeouts are in seconds.
type Config struct {
	Host         string `yaml:"host" mapstructure:"host" validate:"omitempty,hostname|ip"`
	Port         int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout  int    `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	// MaxBodySize bounds uploaded project documents, e.g. "1MB".
	MaxBodySize string `yaml:"max_body_size" mapstructure:"max_body_size"`
	// RateLimit is the number of /v1 requests per minute and client IP; 0 disables it.
	RateLimit int                   `yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
	CORS      middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	return validation.Struct(c)
}
