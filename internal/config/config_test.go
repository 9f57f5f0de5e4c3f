package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-hr-console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("HRM_API_BASE_URL", "")
	t.Setenv("HRM_STORAGE", "")
	t.Setenv("HRM_QUERY_RETRIES", "")

	c := config.New()
	require.Equal(t, "http://localhost:5000", c.GetAPIBaseURL())
	require.Equal(t, 5*time.Minute, c.GetStaleTime())
	require.Equal(t, time.Hour, c.GetRolesStaleTime())
	require.Equal(t, 3, c.GetQueryRetries())
	require.Equal(t, config.StorageFile, c.GetStorageBackend())
}

func TestOverrides(t *testing.T) {
	t.Setenv("HRM_API_BASE_URL", "https://hr.example.com/api/")
	t.Setenv("HRM_STALE_TIME", "90s")
	t.Setenv("HRM_QUERY_RETRIES", "1")
	t.Setenv("HRM_STORAGE", "redis")
	t.Setenv("REDIS_DB", "4")

	c := config.New()
	require.Equal(t, "https://hr.example.com/api/", c.GetAPIBaseURL())
	require.Equal(t, 90*time.Second, c.GetStaleTime())
	require.Equal(t, 1, c.GetQueryRetries())
	require.Equal(t, config.StorageRedis, c.GetStorageBackend())
	require.Equal(t, 4, c.GetRedisDB())
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("HRM_STALE_TIME", "soon")
	t.Setenv("HRM_QUERY_RETRIES", "-2")
	t.Setenv("HRM_STORAGE", "floppy")

	c := config.New()
	require.Equal(t, 5*time.Minute, c.GetStaleTime())
	require.Equal(t, 0, c.GetQueryRetries())
	require.Equal(t, config.StorageFile, c.GetStorageBackend())
}
