package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// APIConfig holds runtime configuration for the API service. It is built
// once in main and handed to services explicitly; nothing reads the
// environment after startup.
type APIConfig struct {
	Environment   string
	Addr          string
	DatabaseURL   string
	MigrationsDir string
	LogLevel      string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
}

// LoadAPIConfig constructs an APIConfig from environment variables.
func LoadAPIConfig() APIConfig {
	return APIConfig{
		Environment:   GetString("APP_ENV", "development"),
		Addr:          GetString("API_ADDR", ":8000"),
		DatabaseURL:   GetString("DATABASE_URL", "postgres://taskflow:taskflow@db:5432/taskflow?sslmode=disable"),
		MigrationsDir: GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		LogLevel:      GetString("LOG_LEVEL", "info"),
		JWTSecret:     GetString("JWT_SECRET", "supersecuresecret"),
		TokenTTL:      GetDuration("TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:    GetInt("BCRYPT_COST", bcrypt.DefaultCost),
	}
}
