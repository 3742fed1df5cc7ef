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
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisEpisodeDB    int    `mapstructure:"REDIS_EPISODE_DB"`
	RedisEnrollmentDB int    `mapstructure:"REDIS_ENROLLMENT_DB"`
	RedisSnapshotDB   int    `mapstructure:"REDIS_SNAPSHOT_DB"`
	RedisQueueDB      int    `mapstructure:"REDIS_QUEUE_DB"`

	// Selection engine tunables.
	EpisodeTTLMinutes  int `mapstructure:"EPISODE_TTL_MINUTES"`
	GatherWindowDays   int `mapstructure:"GATHER_WINDOW_DAYS"`
	SnapshotTTLMinutes int `mapstructure:"SNAPSHOT_TTL_MINUTES"`
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
	viper.SetDefault("REDIS_EPISODE_DB", 0)
	viper.SetDefault("REDIS_ENROLLMENT_DB", 1)
	viper.SetDefault("REDIS_SNAPSHOT_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("EPISODE_TTL_MINUTES", 30)
	viper.SetDefault("GATHER_WINDOW_DAYS", 31)
	viper.SetDefault("SNAPSHOT_TTL_MINUTES", 10)

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
