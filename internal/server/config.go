// Package server provides configuration helpers that define runtime defaults,
// validation, and rate-limiting parameters for the realtime service.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// RateLimitConfig defines the parameters for per-connection message rate limiting.
type RateLimitConfig struct {
	Burst          int
	RefillInterval time.Duration
}

// Config holds the process configuration. Every field can be set from the
// environment.
type Config struct {
	Host           string `env:"HOST"`
	Port           int    `env:"PORT,default=5000" validate:"gt=0,lte=65535"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:5173"`
	MaxMessageSize int64  `env:"MAX_MESSAGE_SIZE,default=16384" validate:"gt=0"`
	SendBufferSize int    `env:"SEND_BUFFER_SIZE,default=256" validate:"gt=0"`

	RateLimitBurst          int           `env:"RATE_LIMIT_BURST,default=20" validate:"gt=0"`
	RateLimitRefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL,default=1s" validate:"gt=0"`

	PingInterval    time.Duration `env:"PING_INTERVAL,default=54s" validate:"gt=0,ltfield=PongWait"`
	PongWait        time.Duration `env:"PONG_WAIT,default=60s" validate:"gt=0"`
	WriteWait       time.Duration `env:"WRITE_WAIT,default=10s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`

	LogLevel string `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`

	MongoURI      string `env:"MONGODB_URI,default=mongodb://localhost:27017" validate:"required"`
	MongoDatabase string `env:"MONGODB_DATABASE,default=chat_db" validate:"required"`

	RedisAddr        string `env:"REDIS_ADDR" validate:"omitempty,hostname_port"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB,default=0" validate:"gte=0"`
	RedisPresenceKey string `env:"REDIS_PRESENCE_KEY,default=chat:online" validate:"required"`

	InternalAPIToken string `env:"INTERNAL_API_TOKEN"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Port:                    5000,
		AllowedOrigins:          "http://localhost:5173",
		MaxMessageSize:          16384,
		SendBufferSize:          256,
		RateLimitBurst:          20,
		RateLimitRefillInterval: time.Second,
		PingInterval:            54 * time.Second,
		PongWait:                60 * time.Second,
		WriteWait:               10 * time.Second,
		ShutdownTimeout:         10 * time.Second,
		LogLevel:                "INFO",
		MongoURI:                "mongodb://localhost:27017",
		MongoDatabase:           "chat_db",
		RedisPresenceKey:        "chat:online",
	}
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	return parseOrigins(c.AllowedOrigins)
}

func (c Config) RateLimit() RateLimitConfig {
	return RateLimitConfig{Burst: c.RateLimitBurst, RefillInterval: c.RateLimitRefillInterval}
}

// MirrorEnabled reports whether presence is mirrored to Redis.
func (c Config) MirrorEnabled() bool {
	return c.RedisAddr != ""
}

func parseOrigins(origins string) []string {
	if strings.TrimSpace(origins) == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
