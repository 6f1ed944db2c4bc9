package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultL1SizeMB          = 100
	defaultL1EvictionSeconds = 600
	defaultConnectTimeoutMs  = 1000
	defaultSendTimeoutMs     = 1000
	defaultReadTimeoutMs     = 1000
	defaultPoolSize          = 10
	defaultMaxIdleTimeoutMs  = 10000
	defaultStaleRatio        = 0.1
)

var validate = validator.New()

// Config represents the main configuration structure
type Config struct {
	L1         L1Config         `yaml:"l1"`
	L2         L2Config         `yaml:"l2"`
	MultiCache MultiCacheConfig `yaml:"multi_cache"`
	Engine     EngineConfig     `yaml:"engine"`
}

// L1Config configures the in-process BigCache level
type L1Config struct {
	Enabled         bool `yaml:"enabled"`
	Size            int  `yaml:"size" validate:"gte=0"` // MB
	EvictionSeconds int  `yaml:"eviction_seconds" validate:"gte=0"`
}

// L2Config configures the shared KeyDB level
type L2Config struct {
	Enabled    bool             `yaml:"enabled"`
	Connection ConnectionConfig `yaml:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive"`
}

// ConnectionConfig holds KeyDB timeouts in milliseconds
type ConnectionConfig struct {
	ConnectTimeout int `yaml:"connect_timeout" validate:"gte=0"`
	SendTimeout    int `yaml:"send_timeout" validate:"gte=0"`
	ReadTimeout    int `yaml:"read_timeout" validate:"gte=0"`
}

// KeepaliveConfig holds KeyDB pool settings
type KeepaliveConfig struct {
	PoolSize       int `yaml:"pool_size" validate:"gte=0"`
	MaxIdleTimeout int `yaml:"max_idle_timeout" validate:"gte=0"` // ms
}

// MultiCacheConfig configures the level composite
type MultiCacheConfig struct {
	// EnablePropagation copies L2 hits into L1
	EnablePropagation bool `yaml:"enable_propagation"`
}

// EngineConfig configures the readthrough engine
type EngineConfig struct {
	// StaleRatio sizes the stale window as a fraction of the fresh ttl
	StaleRatio *float64 `yaml:"stale_ratio" validate:"omitempty,gte=0,lte=10"`
	// ServeStaleOnError returns a stale entry when the producer fails
	ServeStaleOnError bool `yaml:"serve_stale_on_error"`
}

// LoadConfig loads configuration from file path
func LoadConfig(configPath string, logger *zap.Logger) (*Config, error) {
	logger.Info("Loading configuration", zap.String("path", configPath))

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var config Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode YAML config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns a configuration with only L1 enabled
func Default() *Config {
	config := &Config{L1: L1Config{Enabled: true}}
	config.applyDefaults()
	return config
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid cache configuration: %w", err)
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.L1.Size == 0 {
		c.L1.Size = defaultL1SizeMB
	}
	if c.L1.EvictionSeconds == 0 {
		c.L1.EvictionSeconds = defaultL1EvictionSeconds
	}
	if c.L2.Connection.ConnectTimeout == 0 {
		c.L2.Connection.ConnectTimeout = defaultConnectTimeoutMs
	}
	if c.L2.Connection.SendTimeout == 0 {
		c.L2.Connection.SendTimeout = defaultSendTimeoutMs
	}
	if c.L2.Connection.ReadTimeout == 0 {
		c.L2.Connection.ReadTimeout = defaultReadTimeoutMs
	}
	if c.L2.Keepalive.PoolSize == 0 {
		c.L2.Keepalive.PoolSize = defaultPoolSize
	}
	if c.L2.Keepalive.MaxIdleTimeout == 0 {
		c.L2.Keepalive.MaxIdleTimeout = defaultMaxIdleTimeoutMs
	}
	if c.Engine.StaleRatio == nil {
		ratio := defaultStaleRatio
		c.Engine.StaleRatio = &ratio
	}
}

// GetL1Eviction returns the BigCache life window
func (c *Config) GetL1Eviction() time.Duration {
	return time.Duration(c.L1.EvictionSeconds) * time.Second
}

// GetConnectTimeout returns connect timeout as duration
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ConnectTimeout) * time.Millisecond
}

// GetSendTimeout returns send timeout as duration
func (c *Config) GetSendTimeout() time.Duration {
	return time.Duration(c.L2.Connection.SendTimeout) * time.Millisecond
}

// GetReadTimeout returns read timeout as duration
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.L2.Connection.ReadTimeout) * time.Millisecond
}

// GetMaxIdleTimeout returns max idle timeout as duration
func (c *Config) GetMaxIdleTimeout() time.Duration {
	return time.Duration(c.L2.Keepalive.MaxIdleTimeout) * time.Millisecond
}

// GetStaleRatio returns the configured stale ratio
func (c *Config) GetStaleRatio() float64 {
	if c.Engine.StaleRatio == nil {
		return defaultStaleRatio
	}
	return *c.Engine.StaleRatio
}
