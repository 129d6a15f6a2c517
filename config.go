package voltjson

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/biggeezerdevelopment/voltjson/buffer"
)

// Config is the file form of the serializer options.
type Config struct {
	// ExcludeNull omits null properties on write.
	ExcludeNull bool `yaml:"exclude_null"`
	// ExcludeDefault omits zero-valued properties on write.
	ExcludeDefault bool `yaml:"exclude_default"`
	// InitialBufferSize is the capacity rented for each write.
	InitialBufferSize int `yaml:"initial_buffer_size"`
	// MaxPooledBufferSize is the largest write buffer kept for reuse.
	MaxPooledBufferSize int `yaml:"max_pooled_buffer_size"`
	// MaxInputSize caps how much ReadFrom accepts from a stream. Zero means
	// no limit.
	MaxInputSize int64 `yaml:"max_input_size"`
}

const (
	defaultInitialBufferSize = 4096
	defaultMaxInputSize      = 64 << 20
)

// DefaultConfig returns the settings New starts from.
func DefaultConfig() Config {
	return Config{
		InitialBufferSize:   defaultInitialBufferSize,
		MaxPooledBufferSize: buffer.DefaultMaxPooled,
		MaxInputSize:        defaultMaxInputSize,
	}
}

// LoadConfig loads a configuration from a YAML file. Missing keys keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration over the defaults and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.InitialBufferSize < 0 {
		return fmt.Errorf("initial_buffer_size must not be negative, got %d", c.InitialBufferSize)
	}
	if c.MaxPooledBufferSize <= 0 {
		return fmt.Errorf("max_pooled_buffer_size must be positive, got %d", c.MaxPooledBufferSize)
	}
	if c.InitialBufferSize > c.MaxPooledBufferSize {
		return fmt.Errorf("initial_buffer_size %d exceeds max_pooled_buffer_size %d",
			c.InitialBufferSize, c.MaxPooledBufferSize)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative, got %d", c.MaxInputSize)
	}
	return nil
}

// Policy returns the write policy the flags describe.
func (c Config) Policy() Policy {
	var p Policy
	if c.ExcludeNull {
		p |= ExcludeNull
	}
	if c.ExcludeDefault {
		p |= ExcludeDefault
	}
	return p
}
