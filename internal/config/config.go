package config

import "os"

type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	MigrationsDir  string
	PaymentGateway string
}

func Load() Config {
	return Config{
		Addr:           getenv("STORE_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MigrationsDir:  getenv("MIGRATIONS_DIR", "migrations"),
		PaymentGateway: getenv("PAYMENT_GATEWAY", "mock"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
