package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	DBDSN         string `env:"DB_DSN,required,notEmpty"`
	Environment   string `env:"ENV" envDefault:"development"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	MigrationsEnabled bool `env:"MIGRATIONS_ENABLED" envDefault:"true"`

	Redis RedisConfig
	S3    S3Config

	// Query cache
	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	QueryRetry        int           `env:"QUERY_RETRY" envDefault:"1"`
	CacheWarmInterval time.Duration `env:"CACHE_WARM_INTERVAL" envDefault:"15m"`

	// Refuse to delete exam slots that still have booked seats
	ExamSlotDeleteGuard bool `env:"EXAM_SLOT_DELETE_GUARD" envDefault:"false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type S3Config struct {
	Endpoint      string `env:"S3_ENDPOINT"`
	Region        string `env:"S3_REGION" envDefault:"ap-south-1"`
	Bucket        string `env:"S3_BUCKET" envDefault:"onlyadmit-uploads"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	UseSSL        bool   `env:"S3_USE_SSL" envDefault:"true"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

func Load() (*Config, error) {
	// .env is optional, plain environment variables work too
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return Parse()
}

// Parse reads the configuration from the current environment
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.QueryRetry < 0 {
		return nil, fmt.Errorf("QUERY_RETRY must not be negative")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
