package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("CART_TEST_INT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("CART_TEST_INT", 1))

	t.Setenv("CART_TEST_INT", "nope")
	assert.Equal(t, 1, EnvIntDefault("CART_TEST_INT", 1))

	assert.Equal(t, 7, EnvIntDefault("CART_TEST_INT_MISSING", 7))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "db.sqlite", cfg.DSN())
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "cart_events", cfg.KafkaCartTopic)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PORT", "3000")

	assert.Equal(t, 3000, Load().ServerPort)
}
