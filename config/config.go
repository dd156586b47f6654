package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Pricing    PricingConfig
	Cloudinary CloudinaryConfig
	Jobs       JobsConfig
	CORS       CORSConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	// URL is a full postgres DSN. When empty the server runs on the
	// in-memory stores with seeded demo data.
	URL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type PricingConfig struct {
	// Mode selects the cost estimator: "flat" or "random"
	Mode string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type JobsConfig struct {
	ReminderIntervalMinutes int
	StaleAfterMinutes       int
}

type CORSConfig struct {
	AllowedOrigins string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DB_URL", ""),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Pricing: PricingConfig{
			Mode: getEnv("PRICING_MODE", "flat"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Jobs: JobsConfig{
			ReminderIntervalMinutes: getEnvAsInt("REMINDER_INTERVAL_MINUTES", 10),
			StaleAfterMinutes:       getEnvAsInt("STALE_AFTER_MINUTES", 30),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
