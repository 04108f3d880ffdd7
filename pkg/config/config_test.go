package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxBytes)
	assert.Equal(t, "Isaac Imports", cfg.Bootstrap.StoreName)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, time.Hour, cfg.DB.MaxConnLifetime)
	assert.False(t, cfg.DB.ForceIPv4)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "MEMORY")
	v.Set("HTTP_PORT", "9090")
	v.Set("REDIS_ADDR", "localhost:6379")
	v.Set("DASHBOARD_CACHE_TTL_SECONDS", "5")
	v.Set("DB_PORT", "no-es-numero")
	v.Set("DB_MAX_CONNS", "4")
	v.Set("DB_FORCE_IPV4", "true")

	cfg := fromViper(v)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 5432, cfg.DB.Port, "valor no numérico cae al default")
	assert.Equal(t, int32(4), cfg.DB.MaxConns)
	assert.True(t, cfg.DB.ForceIPv4)
}

func TestValidate(t *testing.T) {
	cfg := fromViper(viper.New())
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.JWT.Secret, "development recibe un secreto de desarrollo")

	prod := fromViper(viper.New())
	prod.App.Env = "production"
	assert.Error(t, prod.Validate())

	bad := fromViper(viper.New())
	bad.DB.Driver = "mongo"
	assert.Error(t, bad.Validate())

	pool := fromViper(viper.New())
	pool.DB.MinConns = 20
	assert.Error(t, pool.Validate(), "MinConns no puede superar MaxConns")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "cell", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/cell?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
