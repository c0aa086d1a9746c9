package config

import (
	"os"
	"strconv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port              string
	Environment       string
	ReadTimeout       int
	WriteTimeout      int
	StoreURL          string
	StoreDBPath       string
	MediaDir          string
	PublishKey        string
	PreviewDebounceMS int
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "3000"),
		Environment:       getEnv("ENV", "development"),
		ReadTimeout:       getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:      getEnvAsInt("WRITE_TIMEOUT", 10),
		StoreURL:          getEnv("STORE_URL", "http://localhost:3004"),
		StoreDBPath:       getEnv("STORE_DB_PATH", "data/db/store.db"),
		MediaDir:          getEnv("MEDIA_DIR", "data/media"),
		PublishKey:        getEnv("PUBLISH_KEY", ""),
		PreviewDebounceMS: getEnvAsInt("PREVIEW_DEBOUNCE_MS", 90),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
