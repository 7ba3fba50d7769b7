package config

import (
	"os"

	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	AppPort string
	Env     string

	// AuthSecret is the process-wide salt mixed into password digests.
	AuthSecret string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() Config {

	// .env is a developer convenience; absent in deployed environments.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getEnv("APP_PORT", "8080"),
		Env:     getEnv("APP_ENV", "development"),

		AuthSecret: os.Getenv("AUTH_SECRET"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	return cfg

}

// IsProduction reports whether the service runs in a production deployment.
// Secure cookie attributes key off this.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
