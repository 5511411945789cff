package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/config"
	"github.com/KirkDiggler/ova-combat/internal/dice"
	"github.com/KirkDiggler/ova-combat/internal/notify"
	"github.com/KirkDiggler/ova-combat/internal/repositories/characters"
	"github.com/KirkDiggler/ova-combat/internal/services"
)

// app is everything a command needs once the environment is loaded
type app struct {
	cfg         *config.Config
	logger      *zap.Logger
	roller      dice.Roller
	bus         *notify.Bus
	provider    *services.Provider
	redisClient *redis.Client
}

func loadConfig() (*config.Config, error) {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	return config.Load()
}

func newRoller(cfg config.DiceConfig) dice.Roller {
	if cfg.Seed != 0 {
		return dice.NewSeededRoller(cfg.Seed)
	}
	return dice.NewRandomRoller()
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := cfg.Log.Logger()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		roller: newRoller(cfg.Dice),
		bus:    notify.NewBus(logger.Named("bus")),
	}

	providerConfig := &services.ProviderConfig{
		Roller: a.roller,
		Logger: logger,
	}
	notifiers := notify.Multi{a.bus}

	// Try to connect to Redis if URL is provided
	if cfg.Redis.Enabled() {
		if client := a.connectRedis(); client != nil {
			a.redisClient = client
			providerConfig.CharacterRepository = characters.NewRedisRepository(&characters.RedisRepoConfig{
				Client: client,
			})
			notifiers = append(notifiers, notify.NewRedisPublisher(&notify.RedisPublisherConfig{
				Client:  client,
				Channel: cfg.Notify.Channel,
				Logger:  logger.Named("publisher"),
			}))
			logger.Info("Using Redis for persistence")
		}
	} else {
		logger.Info("No REDIS_URL found, using in-memory repositories")
	}

	providerConfig.Notifier = notifiers
	a.provider = services.NewProvider(providerConfig)
	return a, nil
}

// connectRedis returns nil when Redis cannot be reached
func (a *app) connectRedis() *redis.Client {
	opts, err := a.cfg.Redis.Options()
	if err != nil {
		a.logger.Warn("Falling back to in-memory repositories", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		a.logger.Warn("Failed to connect to Redis, falling back to in-memory repositories",
			zap.String("addr", opts.Addr),
			zap.Error(err))
		_ = client.Close()
		return nil
	}

	a.logger.Info("Successfully connected to Redis", zap.String("addr", opts.Addr))
	return client
}

func (a *app) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("Error closing Redis connection", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
