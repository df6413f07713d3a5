package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StockPolicyAllowNegative, cfg.StockPolicy)
	assert.Equal(t, FramePolicyIgnore, cfg.FrameReimportPolicy)
	assert.Equal(t, "UTC", cfg.BillingLocation.String())
	assert.Equal(t, int64(5<<20), cfg.MaxImportBytes)
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown stock policy", map[string]string{"JWT_SECRET": "s", "STOCK_POLICY": "sometimes"}},
		{"unknown frame policy", map[string]string{"JWT_SECRET": "s", "FRAME_REIMPORT_POLICY": "merge"}},
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"bad timezone", map[string]string{"JWT_SECRET": "s", "BILLING_TIMEZONE": "Mars/Olympus"}},
		{"bad int", map[string]string{"JWT_SECRET": "s", "DB_MAX_OPEN_CONNS": "many"}},
		{"zero import limit", map[string]string{"JWT_SECRET": "s", "MAX_IMPORT_BYTES": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_AuthDisabledNeedsNoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("STOCK_POLICY", StockPolicyRejectOversell)

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AuthDisabled)
	assert.Equal(t, StockPolicyRejectOversell, cfg.StockPolicy)
}
