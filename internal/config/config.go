package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	ListenAddr string

	// Storage
	DBPath     string
	UploadsDir string

	// Views
	TemplatesDir string
	StaticDir    string

	// Page cache
	CacheBackend string // "badger" or "redis"
	CacheWindow  time.Duration
	RedisAddr    string
	RedisPass    string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration
}

var cfg *Config

// Init loads the config using Viper and returns it
func Init() *Config {
	viper.SetDefault("LISTEN_ADDR", ":8080")

	viper.SetDefault("DB_PATH", "data/badger")
	viper.SetDefault("UPLOADS_DIR", "data/uploads")

	viper.SetDefault("TEMPLATES_DIR", "app/views")
	viper.SetDefault("STATIC_DIR", "static")

	viper.SetDefault("CACHE_BACKEND", "badger")
	viper.SetDefault("CACHE_WINDOW", "20s")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	viper.SetDefault("SESSION_SECRET", "dev-only-secret")
	viper.SetDefault("SESSION_TTL", "24h")

	// Load env variables
	viper.AutomaticEnv()

	// Optional config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	_ = viper.ReadInConfig() // ignore error if no file

	cfg = &Config{
		ListenAddr:    viper.GetString("LISTEN_ADDR"),
		DBPath:        viper.GetString("DB_PATH"),
		UploadsDir:    viper.GetString("UPLOADS_DIR"),
		TemplatesDir:  viper.GetString("TEMPLATES_DIR"),
		StaticDir:     viper.GetString("STATIC_DIR"),
		CacheBackend:  viper.GetString("CACHE_BACKEND"),
		CacheWindow:   parseDuration(viper.GetString("CACHE_WINDOW"), 20*time.Second),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPass:     viper.GetString("REDIS_PASSWORD"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		SessionTTL:    parseDuration(viper.GetString("SESSION_TTL"), 24*time.Hour),
	}

	return cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// Get returns the loaded config instance
func Get() *Config {
	return cfg
}
