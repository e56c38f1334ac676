package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"places-api/models"
)

// Config is read once from the environment at startup.
type Config struct {
	Port          string
	DatabasePath  string
	RedisAddr     string
	RedisPassword string
	KafkaBrokers  string
	KafkaTopic    string
	PlacesBaseURL string
	PlacesAPIKey  string
	JWTSecret     []byte
	CacheTTL      time.Duration
}

func Load() Config {
	ttlSeconds, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "3600"))
	if err != nil || ttlSeconds <= 0 {
		ttlSeconds = 3600
	}
	return Config{
		Port:          getEnv("PORT", "8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "places.db"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:  os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:    getEnv("KAFKA_PLACE_TOPIC", "place-events"),
		PlacesBaseURL: getEnv("PLACES_BASE_URL", "https://places.googleapis.com/v1"),
		PlacesAPIKey:  os.Getenv("PLACES_API_KEY"),
		JWTSecret:     []byte(getEnv("JWT_SECRET", "places_super_secret_2024")),
		CacheTTL:      time.Duration(ttlSeconds) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger builds the root logger: console output in debug mode, JSON
// otherwise.
func NewLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("GIN_MODE") != "release" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log
}

// NewDB opens the sqlite database and migrates all models.
func NewDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Merchant{},
		&models.Place{},
		&models.Review{},
		&models.Favorite{},
		&models.Rating{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// NewRedis returns a client for the cache tier, or nil when REDIS_ADDR is
// unset (the caller falls back to the in-memory store).
func NewRedis(cfg Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}

// NewKafkaWriter returns a writer for the place-events topic, or nil when no
// brokers are configured.
func NewKafkaWriter(cfg Config) *kafka.Writer {
	if cfg.KafkaBrokers == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
		Topic:    cfg.KafkaTopic,
		Balancer: &kafka.Hash{},
	}
}
