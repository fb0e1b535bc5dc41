package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "SERVER_PORT", "STORE_DRIVER", "JWT_EXPIRE", "LOCK_WAIT", "AUDIT_BUFFER", "S3_BUCKET"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, DriverJSON, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpire)
	assert.Equal(t, 2*time.Second, cfg.LockWait)
	assert.Equal(t, 100, cfg.AuditBuffer)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.BackupsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("JWT_EXPIRE", "90m")
	t.Setenv("AUDIT_BUFFER", "7")
	t.Setenv("S3_BUCKET", "shop-backups")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpire)
	assert.Equal(t, 7, cfg.AuditBuffer)
	assert.True(t, cfg.BackupsEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"driver", "STORE_DRIVER", "mongo"},
		{"duration", "LOCK_TTL", "five seconds"},
		{"int", "AUDIT_BUFFER", "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
