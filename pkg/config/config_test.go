package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMongo, cfg.Store.Driver)
	assert.Equal(t, "almacen", cfg.Mongo.Database)
	assert.Equal(t, 720, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.UTC, cfg.App.Location())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("MONGO_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 3*time.Second, cfg.Mongo.Timeout())
}

func TestLoad_Errores(t *testing.T) {
	t.Run("sin secreto", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("driver desconocido", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secreto")
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := Load()
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestAppConfig_LocationInvalida(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Marte/Olympus"}.Location())
}
