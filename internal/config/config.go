package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Redis  RedisConfig
	Notify NotifyConfig
	Dice   DiceConfig
	Log    LogConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL is empty when characters are kept in memory
	URL string `env:"REDIS_URL"`
}

// NotifyConfig holds notification configuration
type NotifyConfig struct {
	Channel string `env:"OVA_NOTIFY_CHANNEL" envDefault:"ova:notifications"`
}

// DiceConfig holds dice configuration
type DiceConfig struct {
	// Seed makes rolls reproducible. Zero seeds from the clock.
	Seed int64 `env:"OVA_DICE_SEED"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Enabled reports whether Redis should back the repositories
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// Options parses the Redis URL
func (c RedisConfig) Options() (*redis.Options, error) {
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeInvalidArgument, "invalid REDIS_URL")
	}
	return opts, nil
}

// Logger builds a production logger, or a development one when asked
func (c LogConfig) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeInvalidArgument, "invalid LOG_LEVEL")
	}

	zcfg := zap.NewProductionConfig()
	if c.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to build logger")
	}
	return logger, nil
}
