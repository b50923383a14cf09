package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskDB    int    `mapstructure:"REDIS_TASK_DB"`

	// External calendar gateway.
	CalendarBaseURL    string `mapstructure:"CALENDAR_BASE_URL"`
	CalendarAPIKey     string `mapstructure:"CALENDAR_API_KEY"`
	CalendarTimeoutSec int    `mapstructure:"CALENDAR_TIMEOUT_SEC"`
	AvailabilityTTLSec int    `mapstructure:"AVAILABILITY_TTL_SEC"`

	// Stripe (payment reference verification only).
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Matching knobs. Weights must be non-negative; ranking monotonicity holds
	// for any such values.
	DefaultRadiusKm     float64 `mapstructure:"MATCH_DEFAULT_RADIUS_KM"`
	MatchDistanceWeight float64 `mapstructure:"MATCH_DISTANCE_WEIGHT"`
	MatchRatingWeight   float64 `mapstructure:"MATCH_RATING_WEIGHT"`
	MatchUrgencyBonus   float64 `mapstructure:"MATCH_URGENCY_BONUS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_TASK_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("CALENDAR_BASE_URL", "http://localhost:9090")
	viper.SetDefault("CALENDAR_API_KEY", "")
	viper.SetDefault("CALENDAR_TIMEOUT_SEC", 8)
	viper.SetDefault("AVAILABILITY_TTL_SEC", 120)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("MATCH_DEFAULT_RADIUS_KM", 25.0)
	viper.SetDefault("MATCH_DISTANCE_WEIGHT", 45.0)
	viper.SetDefault("MATCH_RATING_WEIGHT", 35.0)
	viper.SetDefault("MATCH_URGENCY_BONUS", 15.0)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
