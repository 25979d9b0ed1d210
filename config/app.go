package config

import (
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	LogLevel string

	// Catalog collaborator: "sql", "elastic" or "file"
	CatalogBackend string
	CatalogFile    string
	// Zero means catalog queries run without a deadline.
	CatalogTimeout time.Duration

	// Session slot store: "memory" or "redis"
	SessionBackend string
	SessionTTL     time.Duration
	SessionMax     int

	PageSize int
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() *Config {
	once.Do(func() {
		AppConfig = &Config{
			AppName:        GetEnv("APP_NAME", "chatshop"),
			Port:           GetEnv("PORT", "8080"),
			Env:            GetEnv("APP_ENV", "dev"),
			Debug:          GetEnv("DEBUG", "") == "true",
			LogLevel:       GetEnv("LOG_LEVEL", "info"),
			CatalogBackend: GetEnv("CATALOG_BACKEND", "sql"),
			CatalogFile:    GetEnv("CATALOG_FILE", "products.json"),
			CatalogTimeout: GetEnvDuration("CATALOG_TIMEOUT", 0),
			SessionBackend: GetEnv("SESSION_BACKEND", "memory"),
			SessionTTL:     GetEnvDuration("SESSION_TTL", 30*time.Minute),
			SessionMax:     GetEnvInt("SESSION_MAX", 10000),
			PageSize:       GetEnvInt("PAGE_SIZE", 3),
		}
	})
	return AppConfig
}
