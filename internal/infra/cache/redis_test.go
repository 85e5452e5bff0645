package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabfolio/portfolio-api/internal/config"
)

func TestNew(t *testing.T) {
	assert.Nil(t, New(&config.Config{}))
	assert.NoError(t, RegisterOpenTelemetryPlugin(nil))

	mr := miniredis.RunT(t)
	rdb := New(&config.Config{Redis: config.RedisCfg{Addr: mr.Addr(), PoolSize: 2}})
	require.NotNil(t, rdb)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, RegisterOpenTelemetryPlugin(rdb))
	assert.NoError(t, rdb.Ping(context.Background()).Err())
}
