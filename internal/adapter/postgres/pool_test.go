package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/secondbrain-backend/internal/config"
)

func TestApplyPoolSettings(t *testing.T) {
	t.Parallel()

	poolCfg, err := pgxpool.ParseConfig("postgres://u:p@localhost:5432/secondbrain")
	require.NoError(t, err)
	defaultIdle := poolCfg.MaxConnIdleTime

	applyPoolSettings(poolCfg, config.DatabaseConfig{
		MaxConns:        8,
		MinConns:        20,
		MaxConnLifetime: time.Hour,
	})

	assert.Equal(t, int32(8), poolCfg.MaxConns)
	assert.Equal(t, int32(0), poolCfg.MinConns, "min above max is ignored")
	assert.Equal(t, time.Hour, poolCfg.MaxConnLifetime)
	assert.Equal(t, defaultIdle, poolCfg.MaxConnIdleTime)
}
