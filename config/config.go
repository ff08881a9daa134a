package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppBaseURL        string `mapstructure:"APP_BASE_URL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Slot locking and reconciliation.
	LockTTLMinutes       int `mapstructure:"LOCK_TTL_MINUTES"`
	SweepIntervalMinutes int `mapstructure:"SWEEP_INTERVAL_MINUTES"`

	// Bank payment gateways.
	TBCAPIKey  string `mapstructure:"TBC_API_KEY"`
	TBCBaseURL string `mapstructure:"TBC_BASE_URL"`
	BOGAPIKey  string `mapstructure:"BOG_API_KEY"`
	BOGBaseURL string `mapstructure:"BOG_BASE_URL"`

	// SMS provider.
	SMSAPIKey  string `mapstructure:"SMS_API_KEY"`
	SMSSender  string `mapstructure:"SMS_SENDER"`
	SMSBaseURL string `mapstructure:"SMS_BASE_URL"`
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
	viper.SetDefault("APP_BASE_URL", "https://motoslot.page.link")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "motoslot")
	viper.SetDefault("LOCK_TTL_MINUTES", 10)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 5)
	viper.SetDefault("TBC_BASE_URL", "https://api.tbcbank.ge")
	viper.SetDefault("BOG_BASE_URL", "https://ipay.ge")
	viper.SetDefault("SMS_BASE_URL", "https://smsoffice.ge")
	viper.SetDefault("SMS_SENDER", "MotoSlot")

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

// LockTTL returns the slot lock duration, i.e. how long a user may hold a
// slot while completing payment.
func LockTTL() time.Duration {
	return time.Duration(AppConfig.LockTTLMinutes) * time.Minute
}

// SweepInterval returns how often the reconciliation sweep runs.
func SweepInterval() time.Duration {
	return time.Duration(AppConfig.SweepIntervalMinutes) * time.Minute
}
