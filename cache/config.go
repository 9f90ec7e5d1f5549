package cache

import "time"

// Supported KeyValueCache backends.
const (
	BackendRedis     = "redis"
	BackendMemory    = "memory"
	BackendRistretto = "ristretto"
)

// Supported payload codecs.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	// Backend selects the KeyValueCache implementation: redis, memory or ristretto.
	Backend string `yaml:"backend"`

	// TTL is the absolute expiration applied to every cached read.
	TTL time.Duration `yaml:"ttl"`

	// Codec selects the payload encoding: json or msgpack.
	Codec string `yaml:"codec"`

	// KeyPrefix namespaces every key written by this process. Optional.
	KeyPrefix string `yaml:"key_prefix"`

	Redis  RedisConfig  `yaml:"redis"`
	Memory MemoryConfig `yaml:"memory"`
}

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MemoryConfig sizes the in-process backends.
type MemoryConfig struct {
	Capacity           int `yaml:"capacity"`
	NumShards          int `yaml:"num_shards"`
	EvictionPercentage int `yaml:"eviction_percentage"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendMemory,
		TTL:     DefaultTTL,
		Codec:   CodecJSON,
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Memory: MemoryConfig{
			Capacity:           10000,
			NumShards:          256,
			EvictionPercentage: 10,
		},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendRedis:
		if c.Redis.Addr == "" {
			return &ConfigError{Field: "Redis.Addr", Message: "is required for the redis backend"}
		}
	case BackendMemory, BackendRistretto:
		if c.Memory.Capacity <= 0 {
			return &ConfigError{Field: "Memory.Capacity", Message: "must be greater than 0"}
		}
		if c.Backend == BackendMemory {
			if c.Memory.NumShards <= 0 {
				return &ConfigError{Field: "Memory.NumShards", Message: "must be greater than 0"}
			}
			if c.Memory.EvictionPercentage < 1 || c.Memory.EvictionPercentage > 100 {
				return &ConfigError{Field: "Memory.EvictionPercentage", Message: "must be between 1 and 100"}
			}
		}
	default:
		return &ConfigError{Field: "Backend", Message: "must be one of redis, memory, ristretto"}
	}

	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}

	switch c.Codec {
	case CodecJSON, CodecMsgpack:
	default:
		return &ConfigError{Field: "Codec", Message: "must be json or msgpack"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
