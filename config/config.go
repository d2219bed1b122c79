package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TimeZone          string `mapstructure:"TIME_ZONE"`
	SeedBranches      bool   `mapstructure:"SEED_BRANCHES"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisChatDB   int    `mapstructure:"REDIS_CHAT_DB"`

	// Completion service. AIProvider is "groq" or "gemini".
	AIProvider       string `mapstructure:"AI_PROVIDER"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel      string `mapstructure:"GEMINI_MODEL"`
	GroqAPIKey       string `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL      string `mapstructure:"GROQ_BASE_URL"`
	GroqModel        string `mapstructure:"GROQ_MODEL"`
	AITimeoutSeconds int    `mapstructure:"AI_TIMEOUT_SECONDS"`
	ChatHistoryTurns int    `mapstructure:"CHAT_HISTORY_TURNS"`

	// Weather lookup.
	WeatherURL             string `mapstructure:"WEATHER_URL"`
	WeatherCacheTTLSeconds int    `mapstructure:"WEATHER_CACHE_TTL_SECONDS"`
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
	viper.SetDefault("TIME_ZONE", "Europe/Belgrade")
	viper.SetDefault("SEED_BRANCHES", false)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "branchbook")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_CHAT_DB", 1)
	viper.SetDefault("AI_PROVIDER", "groq")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-flash")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	viper.SetDefault("GROQ_MODEL", "llama3-8b-8192")
	viper.SetDefault("AI_TIMEOUT_SECONDS", 15)
	viper.SetDefault("CHAT_HISTORY_TURNS", 8)
	viper.SetDefault("WEATHER_URL", "http://weather-service:8000/current")
	viper.SetDefault("WEATHER_CACHE_TTL_SECONDS", 600)

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

// Location returns the configured local time zone of the branches.
// Falls back to UTC when TIME_ZONE cannot be loaded.
func Location() *time.Location {
	if AppConfig.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.TimeZone)
	if err != nil {
		log.Printf("invalid TIME_ZONE %q, using UTC: %v", AppConfig.TimeZone, err)
		return time.UTC
	}
	return loc
}

// AITimeout is the per-call deadline for the completion service.
func AITimeout() time.Duration {
	if AppConfig.AITimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(AppConfig.AITimeoutSeconds) * time.Second
}
