package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port          string `mapstructure:"PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"` // "postgres" (default) or "memory"
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS"`
	RawgBaseURL   string `mapstructure:"RAWG_BASE_URL"`
	RawgAPIKey    string `mapstructure:"RAWG_API_KEY"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"` // empty disables the catalog cache
}

// TokenTTL returns the session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() *Config {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("TOKEN_TTL_HOURS", 168) // 7 days
	viper.SetDefault("RAWG_BASE_URL", "https://api.rawg.io/api")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
	return cfg
}
