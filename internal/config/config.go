package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	JWTSecret []byte

	KafkaBrokers   []string
	KafkaCartTopic string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "cart-api"),
		ServerPort:  EnvIntDefault("SERVER_PORT", EnvIntDefault("PORT", 8080)),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", DriverSQLite)),
		DBPath:      EnvDefault("DB_PATH", "db.sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaCartTopic: EnvDefault("KAFKA_CART_TOPIC", "cart_events"),
	}

	if cfg.DBDriver == DriverPostgres {
		MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	}

	return cfg
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
