package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/onlyadmit")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 1, cfg.QueryRetry)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.ExamSlotDeleteGuard)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.S3.UseSSL)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/onlyadmit")
	t.Setenv("ENV", "production")
	t.Setenv("EXAM_SLOT_DELETE_GUARD", "true")
	t.Setenv("QUERY_RETRY", "0")
	t.Setenv("S3_BUCKET", "logos")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.ExamSlotDeleteGuard)
	assert.Equal(t, 0, cfg.QueryRetry)
	assert.Equal(t, "logos", cfg.S3.Bucket)
}

func TestParse_RequiresDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsNegativeRetry(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/onlyadmit")
	t.Setenv("QUERY_RETRY", "-1")

	_, err := Parse()
	assert.Error(t, err)
}
