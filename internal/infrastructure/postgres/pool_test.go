package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CellStock-api/pkg/config"
)

func TestPoolConfig_DesdeDBConfig(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL:     "postgres://u:p@db.internal:5432/cell?sslmode=disable",
		MaxConns:        7,
		MinConns:        2,
		MaxConnLifetime: 15 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
	}
	pc, err := PoolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(7), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "db.internal", pc.ConnConfig.Host, "el host no se reescribe")
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_ForceIPv4(t *testing.T) {
	pc, err := PoolConfig(config.DBConfig{Host: "db", Port: 5432, User: "u", DBName: "cell", SSLMode: "disable", ForceIPv4: true})
	require.NoError(t, err)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
