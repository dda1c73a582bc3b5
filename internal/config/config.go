package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application settings, loaded from the environment.
type Config struct {
	Port     string `envconfig:"PORT" default:"5000"`
	DBDSN    string `envconfig:"DB_DSN" default:"greenbytes.db"`
	CartDSN  string `envconfig:"CART_DSN" default:"cart.db"` // customer-local cart file
	LogFile  string `envconfig:"LOG_FILE" default:"./greenbytes.log"`
	Cache    CacheConfig
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
}

// CacheConfig selects the product-list cache backend.
type CacheConfig struct {
	Backend   string        `envconfig:"CACHE_BACKEND" default:"memory"` // memory | redis
	RedisAddr string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	TTL       time.Duration `envconfig:"CACHE_TTL" default:"30s"`
}

// Load reads .env (when present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CART_DSN=%s CACHE_BACKEND=%s", cfg.Port, cfg.DBDSN, cfg.CartDSN, cfg.Cache.Backend)
	return cfg, nil
}
