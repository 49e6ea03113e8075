package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds server configuration.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Cache    CacheConfig
	LogLevel string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
	StaticDir    string
}

type DatasetConfig struct {
	Path string
	// TopBooks is how many rows the top-books table shows.
	TopBooks int
}

type CacheConfig struct {
	// Size is the maximum number of memoized dashboard states. Entries never
	// expire because the dataset is immutable for the process lifetime.
	Size int
}

// Load creates a Config from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("BOOKDASH_PORT", 8080),
			ReadTimeout:  getEnvInt("BOOKDASH_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("BOOKDASH_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("BOOKDASH_IDLE_TIMEOUT", 60),
			StaticDir:    getEnv("BOOKDASH_STATIC_DIR", "web/static"),
		},
		Dataset: DatasetConfig{
			Path:     getEnv("BOOKDASH_DATASET", "data/books.csv"),
			TopBooks: getEnvInt("BOOKDASH_TOP_BOOKS", 20),
		},
		Cache: CacheConfig{
			Size: getEnvInt("BOOKDASH_CACHE_SIZE", 256),
		},
		LogLevel: getEnv("BOOKDASH_LOG_LEVEL", "info"),
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path cannot be empty")
	}
	if c.Dataset.TopBooks <= 0 {
		return fmt.Errorf("top books count must be positive")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" {
		return fmt.Errorf("log level must be debug or info")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
